package redis

import (
	"strconv"

	"easybiz_chat_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// Init 初始化 Redis 连接并创建缓存服务
func Init(cfg *config.RedisConfig) AsyncCacheService {
	addr := cfg.Host + ":" + strconv.Itoa(cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.Db,
		// 连接池配置
		PoolSize:     50,
		MinIdleConns: 15,
	})

	// 15 个 Worker，缓冲区 3000，多个 Service 共享
	return NewRedisCache(client, 15, 3000)
}
