package handler

import (
	"easybiz_chat_server/internal/service/chat"

	"github.com/gin-gonic/gin"
)

// WsHandler WebSocket 接入点
// 认证在连接内的 CONNECT 帧完成，不走 JWT 中间件
type WsHandler struct {
	gateway *chat.Gateway
}

// NewWsHandler 创建 WebSocket Handler
func NewWsHandler(gateway *chat.Gateway) *WsHandler {
	return &WsHandler{gateway: gateway}
}

// Serve 处理 GET /ws
func (h *WsHandler) Serve(c *gin.Context) {
	h.gateway.HandleConnection(c)
}
