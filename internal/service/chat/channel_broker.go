// channel_broker.go
// 核心职责：单机模式下的房间事件分发
// 1. 单个 hub 协程消费统一命令通道，注册/注销/订阅/发布严格按到达顺序处理
// 2. 不依赖外部消息队列，适合单实例部署或开发环境
package chat

import (
	"context"
	"sync"

	"easybiz_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// 命令类型
const (
	cmdRegister = iota
	cmdUnregister
	cmdSubscribe
	cmdPublish
)

// hubCommand hub 协程处理的一条命令
type hubCommand struct {
	kind        int
	session     *Session
	destination string
	event       Event
}

// ChannelBroker 单机房间代理
// topics 和 sessions 只在 hub 协程内访问，无需加锁
type ChannelBroker struct {
	commands chan hubCommand

	topics   map[string]map[*Session]struct{}
	sessions map[*Session]map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelBroker 创建单机代理
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		commands: make(chan hubCommand, constants.CHANNEL_SIZE),
		topics:   make(map[string]map[*Session]struct{}),
		sessions: make(map[*Session]map[string]struct{}),
		done:     make(chan struct{}),
	}
}

// Start 启动 hub 主循环
// 单协程消费保证同一房间内事件的投递顺序与发布顺序一致
func (b *ChannelBroker) Start() {
	for {
		select {
		case <-b.done:
			return
		case cmd := <-b.commands:
			switch cmd.kind {
			case cmdRegister:
				b.handleRegister(cmd.session)
			case cmdUnregister:
				b.handleUnregister(cmd.session)
			case cmdSubscribe:
				b.handleSubscribe(cmd.session, cmd.destination)
			case cmdPublish:
				b.handlePublish(cmd.event)
			}
		}
	}
}

func (b *ChannelBroker) handleRegister(session *Session) {
	if session == nil {
		return
	}
	if _, ok := b.sessions[session]; !ok {
		b.sessions[session] = make(map[string]struct{})
	}
	zap.L().Debug("会话已注册", zap.Int64("userID", session.UserID()))
}

func (b *ChannelBroker) handleUnregister(session *Session) {
	if session == nil {
		return
	}
	for destination := range b.sessions[session] {
		subscribers := b.topics[destination]
		delete(subscribers, session)
		if len(subscribers) == 0 {
			delete(b.topics, destination)
		}
	}
	delete(b.sessions, session)
	zap.L().Debug("会话已注销", zap.Int64("userID", session.UserID()))
}

func (b *ChannelBroker) handleSubscribe(session *Session, destination string) {
	if session == nil || destination == "" {
		return
	}
	// 未注册的会话（已经被注销）不再接受订阅
	subscriptions, ok := b.sessions[session]
	if !ok {
		return
	}
	subscriptions[destination] = struct{}{}
	if b.topics[destination] == nil {
		b.topics[destination] = make(map[*Session]struct{})
	}
	b.topics[destination][session] = struct{}{}
	zap.L().Debug("会话已订阅主题",
		zap.Int64("userID", session.UserID()),
		zap.String("destination", destination))
}

func (b *ChannelBroker) handlePublish(event Event) {
	subscribers := b.topics[event.Destination]
	if len(subscribers) == 0 {
		return
	}
	frame, err := newMessageFrame(event.Destination, event.Payload)
	if err != nil {
		zap.L().Error("序列化广播帧失败", zap.Error(err))
		return
	}
	for session := range subscribers {
		session.enqueue(frame)
	}
}

// submit 将命令放入 hub 通道
func (b *ChannelBroker) submit(cmd hubCommand) {
	select {
	case <-b.done:
	case b.commands <- cmd:
	}
}

// Publish 实现 RoomBroker 接口：发布事件到 hub
func (b *ChannelBroker) Publish(ctx context.Context, event Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return nil
	case b.commands <- hubCommand{kind: cmdPublish, event: event}:
		return nil
	}
}

// Register 实现 RoomBroker 接口：注册会话
func (b *ChannelBroker) Register(session *Session) {
	b.submit(hubCommand{kind: cmdRegister, session: session})
}

// Unregister 实现 RoomBroker 接口：注销会话
func (b *ChannelBroker) Unregister(session *Session) {
	b.submit(hubCommand{kind: cmdUnregister, session: session})
}

// Subscribe 实现 RoomBroker 接口：订阅主题
func (b *ChannelBroker) Subscribe(session *Session, destination string) {
	b.submit(hubCommand{kind: cmdSubscribe, session: session, destination: destination})
}

// Close 停止 hub 主循环，幂等
func (b *ChannelBroker) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}
