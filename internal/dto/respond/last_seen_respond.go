package respond

import "time"

// LastSeenRespond 对端最后查看时间，vistoEm 为空表示对端从未读过任何消息
type LastSeenRespond struct {
	PedidoId int64      `json:"pedidoId"`
	VistoEm  *time.Time `json:"vistoEm"`
}
