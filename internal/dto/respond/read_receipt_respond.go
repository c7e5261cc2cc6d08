package respond

import "time"

// ReadReceiptRespond 已读回执，通过 /topic/messages/{roomId}/lida 广播
type ReadReceiptRespond struct {
	MensagemId int64     `json:"mensagemId"`
	PedidoId   int64     `json:"pedidoId"`
	QuemLeuId  int64     `json:"quemLeuId"`
	LidaEm     time.Time `json:"lidaEm"`
}
