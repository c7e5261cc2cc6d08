// Package service 定义各业务服务的接口
// Handler 层和聊天网关依赖这些接口而非具体实现
package service

import (
	"easybiz_chat_server/internal/dto/respond"
)

// IdentityService 用户身份与展示信息服务
type IdentityService interface {
	// ResolveDisplay 解析用户展示信息，用户不存在时返回 CodeNotFound
	ResolveDisplay(userID int64) (*respond.UserDisplayRespond, error)
}

// OrderService 服务订单（房间）服务
type OrderService interface {
	// GetParticipants 返回订单参与者，订单不存在时返回 CodeNotFound
	GetParticipants(pedidoID int64) (*respond.OrderParticipants, error)
	// Authorize 校验用户是否为订单参与者
	// 订单不存在返回 CodeNotFound，非参与者返回 CodeForbidden
	Authorize(pedidoID int64, userID int64) error
}

// MessageService 消息日志与已读状态服务
type MessageService interface {
	// Append 校验并追加一条消息，发送者必须是订单参与者
	Append(pedidoID int64, remetenteID int64, remetenteNome string, conteudo string) (*respond.MessageRespond, error)
	// History 返回订单的全部消息，按发送时间升序
	// 查看者必须是订单参与者
	History(pedidoID int64, viewerID int64) ([]respond.MessageRespond, error)
	// MarkOne 将单条消息标记为已读
	// 读取自己发送的消息时不产生回执，返回 (nil, nil)
	// 消息已是已读状态时返回带原有已读时间的回执
	MarkOne(pedidoID int64, mensagemID int64, readerID int64) (*respond.ReadReceiptRespond, error)
	// MarkAll 将订单中对端发给 reader 的全部未读消息标记为已读，返回更新条数
	MarkAll(pedidoID int64, readerID int64) (int64, error)
	// LastSeen 返回 identity 最后一次读到非本人消息的时间
	// identity 从未读过任何消息时 VistoEm 为 nil
	LastSeen(pedidoID int64, identityID int64) (*respond.LastSeenRespond, error)
}

// AuthService 令牌服务
type AuthService interface {
	// Refresh 校验刷新令牌并签发新的令牌对
	Refresh(refreshToken string) (*respond.TokenPairRespond, error)
}
