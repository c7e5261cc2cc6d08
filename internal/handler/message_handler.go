package handler

import (
	"strconv"

	"easybiz_chat_server/internal/dto/request"
	"easybiz_chat_server/internal/service"
	"easybiz_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler 聊天消息的 REST 读模型和发送入口
type MessageHandler struct {
	messages service.MessageService
	orders   service.OrderService
	identity service.IdentityService
}

// NewMessageHandler 创建消息 Handler
func NewMessageHandler(messages service.MessageService, orders service.OrderService, identity service.IdentityService) *MessageHandler {
	return &MessageHandler{messages: messages, orders: orders, identity: identity}
}

// pedidoIDParam 解析路径中的订单 ID
func pedidoIDParam(c *gin.Context) (int64, error) {
	pedidoID, err := strconv.ParseInt(c.Param("pedidoId"), 10, 64)
	if err != nil || pedidoID <= 0 {
		return 0, errorx.New(errorx.CodeInvalidParam, "pedido inválido")
	}
	return pedidoID, nil
}

// currentUserID 取 JWT 中间件写入的身份
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

// Send 处理 POST /pedidos/:pedidoId/mensagens
// REST 写入不触发房间广播，WebSocket 的 /app/chat 才是实时路径
func (h *MessageHandler) Send(c *gin.Context) {
	pedidoID, err := pedidoIDParam(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	var req request.SendMessageRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	userID := currentUserID(c)
	nome := ""
	if display, err := h.identity.ResolveDisplay(userID); err == nil {
		nome = display.Nome
	} else {
		zap.L().Warn("解析用户展示信息失败", zap.Int64("userID", userID), zap.Error(err))
	}

	msg, err := h.messages.Append(pedidoID, userID, nome, req.Conteudo)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, msg)
}

// History 处理 GET /pedidos/:pedidoId/mensagens
func (h *MessageHandler) History(c *gin.Context) {
	pedidoID, err := pedidoIDParam(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	messages, err := h.messages.History(pedidoID, currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, messages)
}

// MarkAllRead 处理 POST /pedidos/:pedidoId/mensagens/lidas
// 读者身份取自令牌，标记对端发来的全部未读消息
func (h *MessageHandler) MarkAllRead(c *gin.Context) {
	pedidoID, err := pedidoIDParam(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	rows, err := h.messages.MarkAll(pedidoID, currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"atualizadas": rows})
}

// LastSeen 处理 GET /pedidos/:pedidoId/ultimo-visto
// 返回对端（而非请求者自己）最后查看聊天的时间
func (h *MessageHandler) LastSeen(c *gin.Context) {
	pedidoID, err := pedidoIDParam(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	userID := currentUserID(c)
	participants, err := h.orders.GetParticipants(pedidoID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !participants.Contains(userID) {
		HandleError(c, errorx.New(errorx.CodeForbidden, "acesso negado ao chat"))
		return
	}

	lastSeen, err := h.messages.LastSeen(pedidoID, participants.Other(userID))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, lastSeen)
}
