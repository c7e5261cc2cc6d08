package model

import (
	"database/sql"
	"time"
)

// Message 聊天消息，按订单（房间）组织的追加式消息日志
// lida/lida_em 记录对端的已读状态
type Message struct {
	Id              int64        `gorm:"column:id;primaryKey;autoIncrement:false"`
	PedidoServicoId int64        `gorm:"column:pedido_servico_id;index:idx_pedido_enviado,priority:1;not null"`
	RemetenteId     int64        `gorm:"column:remetente_id;not null"`
	RemetenteNome   string       `gorm:"column:remetente_nome;size:120"` // 冗余存储发送者名称，避免历史查询时 join
	Conteudo        string       `gorm:"column:conteudo;type:text;not null"`
	EnviadoEm       time.Time    `gorm:"column:enviado_em;index:idx_pedido_enviado,priority:2;not null"`
	Lida            bool         `gorm:"column:lida;not null;default:false"`
	LidaEm          sql.NullTime `gorm:"column:lida_em"`
}

func (Message) TableName() string {
	return "mensagem"
}
