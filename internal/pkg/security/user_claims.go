package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "inkstone-fallback-secret"
	JWTExpirationTime        = time.Hour * 24 * 7
)

// UserClaims Token 中携带的业务信息，UserID 为 Mongo ObjectID 的十六进制串
type UserClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
