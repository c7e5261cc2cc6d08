// Package identity 提供用户展示信息的查询与缓存
package identity

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"easybiz_chat_server/internal/dao/mysql"
	"easybiz_chat_server/internal/dao/redis"
	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/pkg/constants"

	"go.uber.org/zap"
)

type Service struct {
	users mysql.UserRepository
	cache redis.AsyncCacheService
}

// NewIdentityService 创建身份服务，cache 可为 nil（跳过缓存）
func NewIdentityService(users mysql.UserRepository, cache redis.AsyncCacheService) *Service {
	return &Service{users: users, cache: cache}
}

func cacheKey(userID int64) string {
	return "user_display_" + strconv.FormatInt(userID, 10)
}

func (s *Service) ResolveDisplay(userID int64) (*respond.UserDisplayRespond, error) {
	// 先查缓存
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), cacheKey(userID))
		if err == nil && cached != "" {
			var display respond.UserDisplayRespond
			if err = json.Unmarshal([]byte(cached), &display); err == nil {
				return &display, nil
			}
			zap.L().Warn("缓存中的用户展示信息损坏", zap.Int64("userID", userID), zap.Error(err))
		}
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	display := &respond.UserDisplayRespond{
		Id:        user.Id,
		Nome:      user.NomeCompleto,
		AvatarURL: user.AvatarURL,
	}

	// 异步回填缓存，不阻塞请求路径
	if s.cache != nil {
		s.cache.SubmitTask(func() {
			data, err := json.Marshal(display)
			if err != nil {
				return
			}
			if err := s.cache.Set(context.Background(), cacheKey(userID), string(data),
				constants.REDIS_TIMEOUT*time.Minute); err != nil {
				zap.L().Warn("回填用户展示缓存失败", zap.Int64("userID", userID), zap.Error(err))
			}
		})
	}
	return display, nil
}
