package mysql

import (
	"time"

	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/internal/model"
)

// MessageRepository 消息日志的持久化操作
type MessageRepository interface {
	// Create 追加一条消息
	Create(message *model.Message) error
	// FindByPedidoID 按发送时间升序返回某订单的全部消息
	FindByPedidoID(pedidoID int64) ([]model.Message, error)
	// FindByID 按主键查找消息，找不到时返回 CodeNotFound
	FindByID(id int64) (*model.Message, error)
	// MarkRead 将未读消息置为已读，返回受影响行数
	// 消息已是已读状态时返回 0 行，保证 lida_em 只写一次
	MarkRead(id int64, at time.Time) (int64, error)
	// MarkAllRead 将某订单中对端发给 reader 的全部未读消息置为已读
	MarkAllRead(pedidoID int64, readerID int64, at time.Time) (int64, error)
	// LastRead 返回某订单中排除指定发送者的消息的最大已读时间
	// 没有任何已读消息时返回 nil
	LastRead(pedidoID int64, excludeRemetenteID int64) (*time.Time, error)
}

// OrderRepository 服务订单（房间）的查询操作
type OrderRepository interface {
	// GetParticipants 返回订单的客户和服务提供者，订单不存在时返回 CodeNotFound
	GetParticipants(pedidoID int64) (*respond.OrderParticipants, error)
}

// UserRepository 用户信息的查询操作
type UserRepository interface {
	// FindByID 按主键查找用户，找不到时返回 CodeNotFound
	FindByID(id int64) (*model.UserInfo, error)
}
