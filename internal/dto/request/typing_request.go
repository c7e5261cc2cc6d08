package request

// TypingRequest 正在输入状态通知请求体
type TypingRequest struct {
	Digitando bool `json:"digitando"`
}
