package chat

import (
	"testing"

	"easybiz_chat_server/pkg/errorx"
	"easybiz_chat_server/pkg/util/jwt"
)

func connectFrame(token string) Frame {
	return Frame{
		Frame:   FrameConnect,
		Headers: map[string]string{"Authorization": "Bearer " + token},
	}
}

func TestInterceptorAuthenticate(t *testing.T) {
	interceptor := NewInterceptor(stubOrders{})

	token, err := jwt.GenerateAccessToken(10)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	userID, err := interceptor.Authenticate(connectFrame(token))
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if userID != 10 {
		t.Errorf("userID = %d, want 10", userID)
	}
}

func TestInterceptorAuthenticateRejects(t *testing.T) {
	interceptor := NewInterceptor(stubOrders{})

	// 非 CONNECT 帧
	if _, err := interceptor.Authenticate(Frame{Frame: FrameSend}); !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("non-CONNECT frame: got %v, want CodeUnauthorized", err)
	}

	// 缺少 Bearer 前缀
	frame := Frame{Frame: FrameConnect, Headers: map[string]string{"Authorization": "abc"}}
	if _, err := interceptor.Authenticate(frame); !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("missing bearer: got %v, want CodeUnauthorized", err)
	}

	// 伪造的令牌
	if _, err := interceptor.Authenticate(connectFrame("nem.um.token")); !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("garbage token: got %v, want CodeUnauthorized", err)
	}

	// Refresh Token 不能用于握手
	refreshToken, _, err := jwt.GenerateRefreshToken(10)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err = interceptor.Authenticate(connectFrame(refreshToken)); !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("refresh token: got %v, want CodeUnauthorized", err)
	}

	// 过期的令牌
	jwt.Init("chat-gateway-test-secret-0123456789", -1, 168)
	expired, err := jwt.GenerateAccessToken(10)
	if err != nil {
		t.Fatalf("GenerateAccessToken(expired): %v", err)
	}
	jwt.Init("chat-gateway-test-secret-0123456789", 60, 168)
	if _, err = interceptor.Authenticate(connectFrame(expired)); !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("expired token: got %v, want CodeUnauthorized", err)
	}
}

func TestInterceptorAuthorizeSubscribe(t *testing.T) {
	interceptor := NewInterceptor(stubOrders{})

	pedidoID, err := interceptor.AuthorizeSubscribe("/topic/messages/42", 10)
	if err != nil {
		t.Fatalf("AuthorizeSubscribe: %v", err)
	}
	if pedidoID != 42 {
		t.Errorf("pedidoID = %d, want 42", pedidoID)
	}

	if _, err = interceptor.AuthorizeSubscribe("/topic/messages/42", 99); !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("outsider: got %v, want CodeForbidden", err)
	}
	if _, err = interceptor.AuthorizeSubscribe("/topic/messages/7", 10); !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("missing room: got %v, want CodeNotFound", err)
	}
	if _, err = interceptor.AuthorizeSubscribe("/qualquer/coisa", 10); !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("bad destination: got %v, want CodeInvalidParam", err)
	}
}
