package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"easybiz_chat_server/internal/config"
	"easybiz_chat_server/internal/dao/mysql"
	myredis "easybiz_chat_server/internal/dao/redis"
	"easybiz_chat_server/internal/handler"
	"easybiz_chat_server/internal/https_server"
	"easybiz_chat_server/internal/infrastructure/logger"
	"easybiz_chat_server/internal/service"
	"easybiz_chat_server/internal/service/chat"
	"easybiz_chat_server/pkg/util/jwt"
	"easybiz_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化 JWT 和雪花 ID
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)
	zap.L().Info("JWT/雪花 ID 初始化成功")

	// 4. 初始化数据库
	db, err := mysql.Init(&conf.MysqlConfig)
	if err != nil {
		zap.L().Fatal("数据库初始化失败", zap.Error(err))
	}
	repos := mysql.NewRepositories(db)
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	cache := myredis.Init(&conf.RedisConfig)
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 Service 层 (依赖注入)
	services := service.NewServices(repos, cache, conf)
	zap.L().Info("Service 层初始化成功")

	// 7. 初始化房间事件 Broker
	// channel 模式走本地通道，kafka 模式支持多实例部署
	var broker chat.RoomBroker
	if conf.KafkaConfig.MessageMode == "kafka" {
		broker = chat.NewKafkaBroker(&conf.KafkaConfig)
	} else {
		broker = chat.NewChannelBroker()
	}
	go broker.Start()
	zap.L().Info("Broker 初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 8. 初始化 WebSocket 网关和参数校验翻译器
	gateway := chat.NewGateway(broker, services, &conf.ChatCoreConfig)
	if err := handler.InitTrans("pt_BR"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 9. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(services, gateway)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 10. 启动服务
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	broker.Close()
	zap.L().Info("服务器已关闭")
}
