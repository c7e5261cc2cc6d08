// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由（无需认证）
func (rt *Router) RegisterAuthRoutes(engine *gin.Engine) {
	authGroup := engine.Group("/auth")
	{
		// POST /auth/refresh - 用 Refresh Token 换取新的令牌对
		authGroup.POST("/refresh", rt.handlers.Auth.Refresh)
	}
}
