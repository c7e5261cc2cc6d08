// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
package handler

import (
	"easybiz_chat_server/internal/service"
	"easybiz_chat_server/internal/service/chat"
)

// Handlers 聚合所有 Handler 实例，Router 层通过此结构访问
type Handlers struct {
	Auth    *AuthHandler
	Message *MessageHandler
	Ws      *WsHandler
}

// NewHandlers 创建并注入所有 Handler 实例
func NewHandlers(svc *service.Services, gateway *chat.Gateway) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc.Auth),
		Message: NewMessageHandler(svc.Message, svc.Order, svc.Identity),
		Ws:      NewWsHandler(gateway),
	}
}
