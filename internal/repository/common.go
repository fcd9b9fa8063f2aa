package repository

import "errors"

var (
	// ErrNotFound 目标文档不存在
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey 唯一索引冲突
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotMatched 条件更新未命中任何文档
	ErrNotMatched = errors.New("no document matched")
)
