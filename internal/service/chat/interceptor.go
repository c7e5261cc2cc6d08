// interceptor.go
// 核心职责：帧级别的安全边界
// 1. CONNECT 帧的令牌校验，绑定会话身份
// 2. SUBSCRIBE / SEND 帧的房间参与者授权
package chat

import (
	"strings"

	"easybiz_chat_server/internal/service"
	"easybiz_chat_server/pkg/errorx"
	"easybiz_chat_server/pkg/util/jwt"
)

const bearerPrefix = "Bearer "

// Interceptor 帧拦截器
type Interceptor struct {
	orders service.OrderService
}

// NewInterceptor 创建帧拦截器
func NewInterceptor(orders service.OrderService) *Interceptor {
	return &Interceptor{orders: orders}
}

// Authenticate 校验 CONNECT 帧的 Authorization 头，返回令牌绑定的用户 ID
// 任何校验失败都返回 CodeUnauthorized，由网关关闭连接
func (i *Interceptor) Authenticate(frame Frame) (int64, error) {
	if frame.Frame != FrameConnect {
		return 0, errorx.New(errorx.CodeUnauthorized, "handshake inválido")
	}
	authorization := frame.Headers["Authorization"]
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return 0, errorx.New(errorx.CodeUnauthorized, "token ausente")
	}
	claims, err := jwt.ParseToken(strings.TrimPrefix(authorization, bearerPrefix))
	if err != nil {
		return 0, errorx.Wrap(err, errorx.CodeUnauthorized, "token inválido ou expirado")
	}
	// Refresh Token 不能用于建立连接
	if claims.Subject != jwt.SubjectAccessToken {
		return 0, errorx.New(errorx.CodeUnauthorized, "token inválido ou expirado")
	}
	return claims.UserID, nil
}

// AuthorizeSubscribe 校验订阅目的地并做参与者检查，返回所属订单 ID
func (i *Interceptor) AuthorizeSubscribe(destination string, userID int64) (int64, error) {
	pedidoID, ok := ParseTopicDestination(destination)
	if !ok {
		return 0, errorx.New(errorx.CodeInvalidParam, "destino inválido")
	}
	if err := i.orders.Authorize(pedidoID, userID); err != nil {
		return 0, err
	}
	return pedidoID, nil
}

// AuthorizeRoom 对 SEND 帧所属订单做参与者检查
func (i *Interceptor) AuthorizeRoom(pedidoID int64, userID int64) error {
	return i.orders.Authorize(pedidoID, userID)
}
