// broker.go
// 核心职责：定义房间事件代理接口
// 抽象事件发布和会话管理，支持 Kafka 和 Channel 两种实现
package chat

import (
	"context"
	"encoding/json"
)

// Event 房间主题上的一次广播
// Payload 为已序列化的业务载荷，原样放入 MESSAGE 帧的 body
type Event struct {
	PedidoId    int64           `json:"pedidoId"`
	Destination string          `json:"destination"`
	Payload     json.RawMessage `json:"payload"`
}

// NewEvent 序列化业务载荷构造事件
func NewEvent(pedidoID int64, destination string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{PedidoId: pedidoID, Destination: destination, Payload: body}, nil
}

// RoomBroker 定义房间事件代理接口
// 支持多种实现：KafkaBroker (分布式), ChannelBroker (单机)
type RoomBroker interface {
	// Publish 发布事件到房间主题
	Publish(ctx context.Context, event Event) error
	// Register 注册会话
	Register(session *Session)
	// Unregister 注销会话并移除其全部订阅
	Unregister(session *Session)
	// Subscribe 将会话订阅到主题，调用方负责先完成授权
	Subscribe(session *Session, destination string)
	// Start 启动事件分发主循环（阻塞）
	Start()
	// Close 关闭代理资源
	Close()
}
