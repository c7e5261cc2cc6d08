// session.go
// 核心职责：单个 WebSocket 连接的会话状态和写协程
package chat

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session 代表一条已通过握手认证的 WebSocket 连接
// outbound 只由写协程消费；投递方通过 enqueue 非阻塞写入
type Session struct {
	conn   *websocket.Conn
	userID int64
	nome   string

	outbound  chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession 创建会话，channelSize 为出站通道缓冲区大小
func NewSession(conn *websocket.Conn, userID int64, nome string, channelSize int) *Session {
	return &Session{
		conn:     conn,
		userID:   userID,
		nome:     nome,
		outbound: make(chan []byte, channelSize),
		done:     make(chan struct{}),
	}
}

// UserID 会话绑定的身份
func (s *Session) UserID() int64 {
	return s.userID
}

// Nome 会话绑定的展示名称
func (s *Session) Nome() string {
	return s.nome
}

// enqueue 非阻塞投递一帧
// 通道满时丢弃该帧（慢消费者不能拖慢房间内其他订阅者）
func (s *Session) enqueue(payload []byte) bool {
	select {
	case <-s.done:
		return false
	case s.outbound <- payload:
		return true
	default:
		zap.L().Warn("会话出站通道已满，丢弃一帧", zap.Int64("userID", s.userID))
		return false
	}
}

// WritePump 写协程循环，从 outbound 取帧写入连接
// outbound 永不关闭，通过 done 通知退出
func (s *Session) WritePump() {
	for {
		select {
		case <-s.done:
			return
		case payload := <-s.outbound:
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				zap.L().Debug("写入 WebSocket 失败", zap.Int64("userID", s.userID), zap.Error(err))
				s.Shutdown()
				return
			}
		}
	}
}

// Shutdown 关闭会话，幂等
func (s *Session) Shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		if err := s.conn.Close(); err != nil {
			zap.L().Debug("关闭 WebSocket 连接失败", zap.Int64("userID", s.userID), zap.Error(err))
		}
	})
}
