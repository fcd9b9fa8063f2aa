package response

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/service"
	stdjson "encoding/json"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	Created             = 201
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// CreatedSuccess 资源创建成功
func CreatedSuccess(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.Response{
		Code:    Created,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error 将错误映射为响应。校验错误携带完整的字段违规列表。
func Error(c *gin.Context, err error) {
	var vde *service.ValidationError
	if errors.As(err, &vde) {
		c.JSON(BadRequest, dto.Response{
			Code:    BadRequest,
			Message: "validation failed",
			Data:    vde.Violations,
		})
		return
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, "invalid request parameters")
		return
	}

	// gin 的绑定走标准库 json，自有的反序列化走 goccy，两种类型错误都按 400 处理
	var unmarshalTypeError *json.UnmarshalTypeError
	var stdTypeError *stdjson.UnmarshalTypeError
	var stdSyntaxError *stdjson.SyntaxError
	if errors.As(err, &unmarshalTypeError) || errors.As(err, &stdTypeError) || errors.As(err, &stdSyntaxError) {
		Fail(c, BadRequest, "malformed request body")
		return
	}

	code, ok := service.ErrorMap[err]
	if !ok {
		code = InternalServerError
		log.ErrorContext(c.Request.Context(), "Unhandled error", "err", err)
		Fail(c, code, "internal server error")
		return
	}
	Fail(c, code, err.Error())
}
