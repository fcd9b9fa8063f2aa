package middleware

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有指定角色之一，需在鉴权中间件之后挂载
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(consts.CtxRoleKey)

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Fail(c, response.Forbidden, "access denied, insufficient permissions")
		c.Abort()
	}
}
