package util

import (
	"errors"
	"strings"
)

// ErrParamInvalid 请求参数无法解析或不符合基本格式
var ErrParamInvalid = errors.New("invalid request parameters")

// FieldViolation 单个字段的校验失败原因
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 聚合一次请求中全部字段级校验失败，一次性返回给调用方
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
