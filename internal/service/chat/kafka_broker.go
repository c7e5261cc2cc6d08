// kafka_broker.go
// 核心职责：分布式模式下的房间事件代理
// 1. 发布侧把事件写入 Kafka 主题，按订单 ID 做分区键保持同房间有序
// 2. 消费侧从 Kafka 读回事件，交给本地 ChannelBroker 分发给本机订阅者
// 3. 多实例部署时每个实例各自消费全量事件，只投递给本机在线的会话
package chat

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"easybiz_chat_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBroker 分布式房间代理
type KafkaBroker struct {
	local    *ChannelBroker
	producer *kafka.Writer
	consumer *kafka.Reader
}

// NewKafkaBroker 创建 Kafka 代理
func NewKafkaBroker(cfg *config.KafkaConfig) *KafkaBroker {
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.HostPort),
		Topic:                  cfg.ChatTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           cfg.Timeout * time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: false,
	}
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.HostPort},
		Topic:          cfg.ChatTopic,
		CommitInterval: cfg.Timeout * time.Second,
		StartOffset:    kafka.LastOffset,
	})
	return &KafkaBroker{
		local:    NewChannelBroker(),
		producer: producer,
		consumer: consumer,
	}
}

// Publish 实现 RoomBroker 接口：事件写入 Kafka
// 以订单 ID 为分区键，同一房间的事件落在同一分区，保持顺序
func (b *KafkaBroker) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.PedidoId, 10)),
		Value: value,
	})
}

// Register 实现 RoomBroker 接口：注册会话到本地分发器
func (b *KafkaBroker) Register(session *Session) {
	b.local.Register(session)
}

// Unregister 实现 RoomBroker 接口：从本地分发器注销会话
func (b *KafkaBroker) Unregister(session *Session) {
	b.local.Unregister(session)
}

// Subscribe 实现 RoomBroker 接口：订阅本地分发器的主题
func (b *KafkaBroker) Subscribe(session *Session, destination string) {
	b.local.Subscribe(session, destination)
}

// Start 启动消费循环和本地分发循环（阻塞于本地循环）
func (b *KafkaBroker) Start() {
	go b.consumeLoop()
	b.local.Start()
}

// consumeLoop 从 Kafka 读回事件并交给本地分发器
func (b *KafkaBroker) consumeLoop() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("Kafka 消费循环 panic", zap.Any("recover", r))
			go b.consumeLoop()
		}
	}()

	ctx := context.Background()
	for {
		select {
		case <-b.local.done:
			return
		default:
		}

		kafkaMessage, err := b.consumer.ReadMessage(ctx)
		if err != nil {
			zap.L().Error("读取 Kafka 消息失败", zap.Error(err))
			continue
		}
		var event Event
		if err := json.Unmarshal(kafkaMessage.Value, &event); err != nil {
			zap.L().Error("反序列化房间事件失败",
				zap.Int64("offset", kafkaMessage.Offset), zap.Error(err))
			continue
		}
		if err := b.local.Publish(ctx, event); err != nil {
			zap.L().Error("本地分发房间事件失败", zap.Error(err))
		}
	}
}

// Close 关闭 Kafka 资源和本地分发器
func (b *KafkaBroker) Close() {
	if err := b.producer.Close(); err != nil {
		zap.L().Error("关闭 Kafka Producer 失败", zap.Error(err))
	}
	if err := b.consumer.Close(); err != nil {
		zap.L().Error("关闭 Kafka Consumer 失败", zap.Error(err))
	}
	b.local.Close()
}
