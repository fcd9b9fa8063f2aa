package api

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/response"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"Inkstone/internal/repository"
)

var startedAt = time.Now()

func SetupRouter(group *HandlersGroup, users repository.UserRepo, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.RateLimitMiddleware(
		int64(cfg.RateLimit.Requests),
		time.Duration(cfg.RateLimit.Window)*time.Second,
	))
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().Format(time.RFC3339),
				"uptime":    time.Since(startedAt).String(),
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware(users))
			{
				loggedGroup.POST("/logout", group.AuthHandler.Logout)
				loggedGroup.GET("/me", group.AuthHandler.Me)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			// 匿名可读，携带有效 Token 时管理员可见全部状态
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.OptionalAuthMiddleware(users))
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/search", group.PostHandler.SearchPosts)
				authOptGroup.GET("/popular", group.PostHandler.PopularPosts)
				authOptGroup.GET("/:id", group.PostHandler.GetPost)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware(users))
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:id", group.PostHandler.DeletePost)
				authGroup.POST("/:id/like", group.PostHandler.ToggleLike)
				authGroup.POST("/:id/comments", group.PostHandler.AddComment)
			}
		}

		userGroup := apiGroup.Group("/users")
		userGroup.Use(middleware.AuthMiddleware(users))
		{
			userGroup.GET("/:id", group.UserHandler.GetUser)

			// 用户列表仅管理员可见
			adminGroup := userGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.GET("", group.UserHandler.ListUsers)
			}
		}

		bugGroup := apiGroup.Group("/bugs")
		bugGroup.Use(middleware.AuthMiddleware(users))
		{
			bugGroup.GET("", group.BugHandler.ListBugs)
			bugGroup.POST("", group.BugHandler.CreateBug)
			bugGroup.PATCH("/:id/status", group.BugHandler.UpdateBugStatus)
			bugGroup.DELETE("/:id", group.BugHandler.DeleteBug)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, response.NotFound, "route not found")
	})

	return r
}
