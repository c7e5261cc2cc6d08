// gateway.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)，在握手窗口内完成 CONNECT 帧认证
// 2. 逐帧处理 SUBSCRIBE / SEND / DISCONNECT
// 3. 通过 RoomBroker 接口解耦事件投递逻辑
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"easybiz_chat_server/internal/config"
	"easybiz_chat_server/internal/dto/request"
	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 允许任意来源连接，前端和后端通常不在同一端口
var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway WebSocket 网关
type Gateway struct {
	broker      RoomBroker
	interceptor *Interceptor
	identity    service.IdentityService
	messages    service.MessageService

	handshakeTimeout time.Duration
	channelSize      int
}

// NewGateway 创建网关
func NewGateway(broker RoomBroker, services *service.Services, cfg *config.ChatCoreConfig) *Gateway {
	return &Gateway{
		broker:           broker,
		interceptor:      NewInterceptor(services.Order),
		identity:         services.Identity,
		messages:         services.Message,
		handshakeTimeout: cfg.HandshakeTimeout,
		channelSize:      cfg.ChannelSize,
	}
}

// HandleConnection 升级连接并接管其整个生命周期
// 握手失败直接关闭连接；握手成功后任何业务失败只丢弃当前帧
func (g *Gateway) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("升级 WebSocket 连接失败", zap.Error(err))
		return
	}

	session, err := g.handshake(conn)
	if err != nil {
		zap.L().Info("WebSocket 握手被拒绝", zap.Error(err))
		conn.Close()
		return
	}

	g.broker.Register(session)
	go session.WritePump()
	defer func() {
		g.broker.Unregister(session)
		session.Shutdown()
	}()

	ack, err := json.Marshal(Frame{Frame: FrameConnected})
	if err == nil {
		session.enqueue(ack)
	}
	zap.L().Info("WebSocket 连接已建立", zap.Int64("userID", session.UserID()))

	g.readLoop(session)
}

// handshake 在握手窗口内读取第一帧并完成认证
func (g *Gateway) handshake(conn *websocket.Conn) (*Session, error) {
	if err := conn.SetReadDeadline(time.Now().Add(g.handshakeTimeout)); err != nil {
		return nil, err
	}
	_, payload, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var frame Frame
	if err = json.Unmarshal(payload, &frame); err != nil {
		return nil, err
	}

	userID, err := g.interceptor.Authenticate(frame)
	if err != nil {
		return nil, err
	}

	// 展示名称解析失败不阻断握手，消息仍可发送
	nome := ""
	if display, err := g.identity.ResolveDisplay(userID); err == nil {
		nome = display.Nome
	} else {
		zap.L().Warn("解析用户展示信息失败", zap.Int64("userID", userID), zap.Error(err))
	}

	// 握手完成，清除读超时
	if err = conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, err
	}
	return NewSession(conn, userID, nome, g.channelSize), nil
}

// readLoop 逐帧处理客户端输入
func (g *Gateway) readLoop(session *Session) {
	for {
		_, payload, err := session.conn.ReadMessage()
		if err != nil {
			zap.L().Debug("WebSocket 连接断开", zap.Int64("userID", session.UserID()), zap.Error(err))
			return
		}
		var frame Frame
		if err = json.Unmarshal(payload, &frame); err != nil {
			zap.L().Debug("丢弃无法解析的帧", zap.Int64("userID", session.UserID()), zap.Error(err))
			continue
		}

		switch frame.Frame {
		case FrameSubscribe:
			g.handleSubscribe(session, frame)
		case FrameSend:
			g.handleSend(session, frame)
		case FrameDisconnect:
			return
		default:
			zap.L().Debug("丢弃未知类型帧",
				zap.Int64("userID", session.UserID()), zap.String("frame", frame.Frame))
		}
	}
}

// handleSubscribe 授权通过后订阅主题并回执，失败时静默丢弃
func (g *Gateway) handleSubscribe(session *Session, frame Frame) {
	if _, err := g.interceptor.AuthorizeSubscribe(frame.Destination, session.UserID()); err != nil {
		zap.L().Info("拒绝订阅",
			zap.Int64("userID", session.UserID()),
			zap.String("destination", frame.Destination),
			zap.Error(err))
		return
	}
	g.broker.Subscribe(session, frame.Destination)
	ack, err := json.Marshal(Frame{Frame: FrameSubscribed, Destination: frame.Destination})
	if err == nil {
		session.enqueue(ack)
	}
}

// handleSend 分发 /app 目的地的载荷
func (g *Gateway) handleSend(session *Session, frame Frame) {
	kind, pedidoID, mensagemID, ok := parseAppDestination(frame.Destination)
	if !ok {
		zap.L().Debug("丢弃目的地无效的 SEND 帧",
			zap.Int64("userID", session.UserID()), zap.String("destination", frame.Destination))
		return
	}

	switch kind {
	case appSendMessage:
		g.handleChatMessage(session, pedidoID, frame.Body)
	case appTyping:
		g.handleTyping(session, pedidoID, frame.Body)
	case appMarkRead:
		g.handleMarkRead(session, pedidoID, mensagemID)
	}
}

// handleChatMessage 持久化消息后广播到房间主题
// 广播严格发生在入库成功之后
func (g *Gateway) handleChatMessage(session *Session, pedidoID int64, body json.RawMessage) {
	var req request.SendMessageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		zap.L().Debug("丢弃消息体无效的 SEND 帧", zap.Int64("userID", session.UserID()), zap.Error(err))
		return
	}
	msg, err := g.messages.Append(pedidoID, session.UserID(), session.Nome(), req.Conteudo)
	if err != nil {
		zap.L().Info("拒绝消息发送",
			zap.Int64("userID", session.UserID()), zap.Int64("pedidoID", pedidoID), zap.Error(err))
		return
	}
	g.publish(pedidoID, TopicMessages(pedidoID), msg)
}

// handleTyping 广播输入状态，不落库
func (g *Gateway) handleTyping(session *Session, pedidoID int64, body json.RawMessage) {
	if err := g.interceptor.AuthorizeRoom(pedidoID, session.UserID()); err != nil {
		zap.L().Info("拒绝输入状态广播",
			zap.Int64("userID", session.UserID()), zap.Int64("pedidoID", pedidoID), zap.Error(err))
		return
	}
	var req request.TypingRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			zap.L().Debug("丢弃输入状态无效的 SEND 帧", zap.Int64("userID", session.UserID()), zap.Error(err))
			return
		}
	}
	g.publish(pedidoID, TopicTyping(pedidoID), respond.TypingRespond{
		PedidoId:    pedidoID,
		UsuarioId:   session.UserID(),
		UsuarioNome: session.Nome(),
		Digitando:   req.Digitando,
	})
}

// handleMarkRead 单条已读标记，成功后广播回执和更新后的最后查看时间
func (g *Gateway) handleMarkRead(session *Session, pedidoID int64, mensagemID int64) {
	if err := g.interceptor.AuthorizeRoom(pedidoID, session.UserID()); err != nil {
		zap.L().Info("拒绝已读标记",
			zap.Int64("userID", session.UserID()), zap.Int64("pedidoID", pedidoID), zap.Error(err))
		return
	}
	receipt, err := g.messages.MarkOne(pedidoID, mensagemID, session.UserID())
	if err != nil {
		zap.L().Info("已读标记失败",
			zap.Int64("userID", session.UserID()),
			zap.Int64("mensagemID", mensagemID), zap.Error(err))
		return
	}
	// 读自己发的消息不产生任何广播
	if receipt == nil {
		return
	}
	g.publish(pedidoID, TopicRead(pedidoID), receipt)

	lastSeen, err := g.messages.LastSeen(pedidoID, session.UserID())
	if err != nil {
		zap.L().Error("计算最后查看时间失败",
			zap.Int64("pedidoID", pedidoID), zap.Error(err))
		return
	}
	g.publish(pedidoID, TopicLastSeen(pedidoID), lastSeen)
}

func (g *Gateway) publish(pedidoID int64, destination string, payload any) {
	event, err := NewEvent(pedidoID, destination, payload)
	if err != nil {
		zap.L().Error("序列化房间事件失败", zap.String("destination", destination), zap.Error(err))
		return
	}
	if err := g.broker.Publish(context.Background(), event); err != nil {
		zap.L().Error("发布房间事件失败", zap.String("destination", destination), zap.Error(err))
	}
}
