package api

import "Inkstone/internal/api/handler"

// HandlersGroup 聚合全部 HTTP Handler，供路由装配使用
type HandlersGroup struct {
	AuthHandler *handler.AuthHandler
	PostHandler *handler.PostHandler
	UserHandler *handler.UserHandler
	BugHandler  *handler.BugHandler
}
