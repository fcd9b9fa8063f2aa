package service

import (
	"Inkstone/internal/pkg/util"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = util.ErrParamInvalid
	ErrNoToken            = errors.New("access denied, no token provided")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenVerification  = errors.New("token verification failed")
	ErrUserNotFound       = errors.New("invalid token, user not found")
	ErrUserNotExist       = errors.New("user not found")
	ErrUserDeactivated    = errors.New("account is deactivated")
	ErrUserExist          = errors.New("user with this email or username already exists")
	ErrCredentialsInvalid = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied, you can only modify your own posts")
	ErrPostNotFound       = errors.New("post not found")
	ErrSlugConflict       = errors.New("post with this slug already exists")
	ErrAlreadyLiked       = errors.New("user has already liked this post")
	ErrCommentsNotAllowed = errors.New("comments are not allowed on this post")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBugNotFound        = errors.New("bug not found")
	ErrBugStatusInvalid   = errors.New("invalid bug status")
	UnExpectedError       = errors.New("unexpected server error, please try again later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrNoToken:            Unauthorized,
	ErrTokenInvalid:       Unauthorized,
	ErrTokenExpired:       Unauthorized,
	ErrTokenVerification:  Unauthorized,
	ErrUserNotFound:       Unauthorized,
	ErrUserNotExist:       NotFound,
	ErrUserDeactivated:    Unauthorized,
	ErrUserExist:          BadRequest,
	ErrCredentialsInvalid: Unauthorized,
	ErrForbidden:          Forbidden,
	ErrPostNotFound:       NotFound,
	ErrSlugConflict:       Conflict,
	ErrAlreadyLiked:       BadRequest,
	ErrCommentsNotAllowed: BadRequest,
	ErrCategoryNotFound:   NotFound,
	ErrBugNotFound:        NotFound,
	ErrBugStatusInvalid:   BadRequest,
	UnExpectedError:       InternalServerError,
}

// 校验错误的定义放在 util（叶子包），这里取别名供上层统一从 service 引用
type (
	FieldViolation  = util.FieldViolation
	ValidationError = util.ValidationError
)
