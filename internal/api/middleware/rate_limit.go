package middleware

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/response"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 基于 Redis 固定窗口的限流，按客户端 IP 计数。
// Redis 不可用时放行，限流只做保护不做强一致。
func RateLimitMiddleware(requests int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := consts.RateLimitKey + c.ClientIP()

		count, err := redis.IncrWithWindow(c.Request.Context(), key, window)
		if err != nil {
			log.WarnContext(c.Request.Context(), "Rate limit counter failed", "err", err)
			c.Next()
			return
		}

		if count > requests {
			response.Fail(c, response.TooManyRequests, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
