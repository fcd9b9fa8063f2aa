package middleware

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/service"
	"errors"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Inkstone/internal/repository"
)

// AuthMiddleware 鉴权中间件。校验 Bearer Token、黑名单与账户状态，
// 通过后把当前用户写入请求上下文。
func AuthMiddleware(users repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c)
		if err != nil {
			abortWith(c, err)
			return
		}

		user, claims, err := authenticate(c, users, token)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(consts.CtxUserKey, user)
		c.Set(consts.CtxUserIDKey, user.ID.Hex())
		c.Set(consts.CtxRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选鉴权。携带有效 Token 时注入用户身份，
// 未携带或校验失败时按匿名请求放行。
func OptionalAuthMiddleware(users repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		user, claims, err := authenticate(c, users, token)
		if err != nil {
			log.DebugContext(c.Request.Context(), "Optional auth skipped", "err", err)
			c.Next()
			return
		}

		c.Set(consts.CtxUserKey, user)
		c.Set(consts.CtxUserIDKey, user.ID.Hex())
		c.Set(consts.CtxRoleKey, claims.Role)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", service.ErrNoToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", service.ErrNoToken
	}
	return parts[1], nil
}

func authenticate(c *gin.Context, users repository.UserRepo, token string) (*model.User, *security.UserClaims, error) {
	// 已注销的 Token 按签名段拉黑
	if signature, sigErr := security.ExtractSignature(token); sigErr == nil {
		value, redisErr := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if redisErr != nil {
			log.WarnContext(c.Request.Context(), "Token blacklist lookup failed", "err", redisErr)
		}
		if value != "" {
			return nil, nil, service.ErrTokenInvalid
		}
	}

	claims, err := security.ValidateToken(token)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, nil, service.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, nil, service.ErrTokenInvalid
		default:
			return nil, nil, service.ErrTokenVerification
		}
	}

	oid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, nil, service.ErrTokenInvalid
	}

	account, err := users.FindByID(c.Request.Context(), oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, service.ErrUserNotFound
		}
		return nil, nil, err
	}

	if !account.IsActive {
		return nil, nil, service.ErrUserDeactivated
	}

	return account, claims, nil
}

func abortWith(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
