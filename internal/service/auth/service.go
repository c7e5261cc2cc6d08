// Package auth 提供令牌刷新服务
package auth

import (
	"easybiz_chat_server/internal/dto/respond"
	"easybiz_chat_server/pkg/errorx"
	"easybiz_chat_server/pkg/util/jwt"

	"go.uber.org/zap"
)

type Service struct{}

// NewAuthService 创建令牌服务
func NewAuthService() *Service {
	return &Service{}
}

func (s *Service) Refresh(refreshToken string) (*respond.TokenPairRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "token de atualização inválido")
	}
	// Access Token 不能用于刷新
	if claims.Subject != jwt.SubjectRefreshToken {
		return nil, errorx.New(errorx.CodeUnauthorized, "token de atualização inválido")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("签发 Access Token 失败", zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "falha ao emitir token")
	}
	newRefreshToken, _, err := jwt.GenerateRefreshToken(claims.UserID)
	if err != nil {
		zap.L().Error("签发 Refresh Token 失败", zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "falha ao emitir token")
	}

	return &respond.TokenPairRespond{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}
