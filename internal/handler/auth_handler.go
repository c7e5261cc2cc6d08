package handler

import (
	"easybiz_chat_server/internal/dto/request"
	"easybiz_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 令牌相关接口
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler 创建认证 Handler
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Refresh 处理 POST /auth/refresh
// 用有效的 Refresh Token 换取新的令牌对
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	pair, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, pair)
}
