package respond

import "time"

// MessageRespond 消息视图，通过 /topic/messages/{roomId} 广播，也用于历史查询
type MessageRespond struct {
	Id            int64      `json:"id"`
	PedidoId      int64      `json:"pedidoId"`
	RemetenteId   int64      `json:"remetenteId"`
	RemetenteNome string     `json:"remetenteNome"`
	Conteudo      string     `json:"conteudo"`
	EnviadoEm     time.Time  `json:"enviadoEm"`
	Lida          bool       `json:"lida"`
	LidaEm        *time.Time `json:"lidaEm"`
}
