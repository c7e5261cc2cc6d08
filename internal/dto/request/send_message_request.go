package request

// SendMessageRequest 发送消息请求体，在 WebSocket SEND 帧和 REST 接口复用
type SendMessageRequest struct {
	Conteudo string `json:"conteudo" binding:"required"`
}
