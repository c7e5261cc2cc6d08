package service

import (
	"easybiz_chat_server/internal/config"
	"easybiz_chat_server/internal/dao/mysql"
	"easybiz_chat_server/internal/dao/redis"
	"easybiz_chat_server/internal/service/auth"
	"easybiz_chat_server/internal/service/identity"
	"easybiz_chat_server/internal/service/message"
	"easybiz_chat_server/internal/service/order"
)

// Services 聚合全部业务服务，统一注入 Handler 和聊天网关
type Services struct {
	Identity IdentityService
	Order    OrderService
	Message  MessageService
	Auth     AuthService
}

// NewServices 组装服务层
// cache 可为 nil，此时各服务直接查库
func NewServices(repos *mysql.Repositories, cache redis.AsyncCacheService, cfg *config.Config) *Services {
	orderSvc := order.NewOrderService(repos.Order, cache)
	return &Services{
		Identity: identity.NewIdentityService(repos.User, cache),
		Order:    orderSvc,
		Message:  message.NewMessageService(repos.Message, orderSvc, cfg.ChatCoreConfig.MaxMessageLength),
		Auth:     auth.NewAuthService(),
	}
}
