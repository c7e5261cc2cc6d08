// Package order 提供服务订单（房间）的参与者查询与授权
package order

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"easybiz_chat_server/internal/dao/mysql"
	"easybiz_chat_server/internal/dao/redis"
	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/pkg/constants"
	"easybiz_chat_server/pkg/errorx"

	"go.uber.org/zap"
)

type Service struct {
	orders mysql.OrderRepository
	cache  redis.AsyncCacheService
}

// NewOrderService 创建订单服务，cache 可为 nil（跳过缓存）
func NewOrderService(orders mysql.OrderRepository, cache redis.AsyncCacheService) *Service {
	return &Service{orders: orders, cache: cache}
}

func cacheKey(pedidoID int64) string {
	return "order_participants_" + strconv.FormatInt(pedidoID, 10)
}

func (s *Service) GetParticipants(pedidoID int64) (*respond.OrderParticipants, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), cacheKey(pedidoID))
		if err == nil && cached != "" {
			var participants respond.OrderParticipants
			if err = json.Unmarshal([]byte(cached), &participants); err == nil {
				return &participants, nil
			}
			zap.L().Warn("缓存中的订单参与者信息损坏", zap.Int64("pedidoID", pedidoID), zap.Error(err))
		}
	}

	participants, err := s.orders.GetParticipants(pedidoID)
	if err != nil {
		return nil, err
	}

	// 参与者在订单生命周期内不变，可放心缓存
	if s.cache != nil {
		snapshot := *participants
		s.cache.SubmitTask(func() {
			data, err := json.Marshal(snapshot)
			if err != nil {
				return
			}
			if err := s.cache.Set(context.Background(), cacheKey(pedidoID), string(data),
				constants.PARTICIPANTS_TIMEOUT*time.Minute); err != nil {
				zap.L().Warn("回填订单参与者缓存失败", zap.Int64("pedidoID", pedidoID), zap.Error(err))
			}
		})
	}
	return participants, nil
}

func (s *Service) Authorize(pedidoID int64, userID int64) error {
	participants, err := s.GetParticipants(pedidoID)
	if err != nil {
		return err
	}
	if !participants.Contains(userID) {
		return errorx.New(errorx.CodeForbidden, "acesso negado ao chat")
	}
	return nil
}
