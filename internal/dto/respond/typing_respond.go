package respond

// TypingRespond 正在输入状态，通过 /topic/messages/{roomId}/digitando 广播
// 瞬态事件，不落库
type TypingRespond struct {
	PedidoId    int64  `json:"pedidoId"`
	UsuarioId   int64  `json:"usuarioId"`
	UsuarioNome string `json:"usuarioNome"`
	Digitando   bool   `json:"digitando"`
}
