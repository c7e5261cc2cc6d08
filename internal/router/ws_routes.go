// 本文件定义 WebSocket 接入路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 路由
// 认证在连接内的 CONNECT 帧完成，因此不挂 JWT 中间件
func (rt *Router) RegisterWebSocketRoutes(engine *gin.Engine) {
	engine.GET("/ws", rt.handlers.Ws.Serve)
}
