// 本文件定义聊天消息的 REST 路由
package router

import (
	"easybiz_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由（需要认证）
func (rt *Router) RegisterMessageRoutes(engine *gin.Engine) {
	pedidoGroup := engine.Group("/pedidos/:pedidoId", middleware.JWTAuth())
	{
		pedidoGroup.GET("/mensagens", rt.handlers.Message.History)          // 历史消息，按时间升序
		pedidoGroup.POST("/mensagens", rt.handlers.Message.Send)            // REST 发送（不广播）
		pedidoGroup.POST("/mensagens/lidas", rt.handlers.Message.MarkAllRead) // 全部标记已读
		pedidoGroup.GET("/ultimo-visto", rt.handlers.Message.LastSeen)      // 对端最后查看时间
	}
}
