package model

// ServiceOrder 服务订单，即一个聊天房间
// 参与者为发起订单的客户和承接订单的商家所属用户
type ServiceOrder struct {
	Id        int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	ClienteId int64 `gorm:"column:cliente_id;not null;index"`
	NegocioId int64 `gorm:"column:negocio_id;not null;index"`
}

func (ServiceOrder) TableName() string {
	return "pedido_servico"
}

// Business 商家，归属于一个平台用户
type Business struct {
	Id        int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	UsuarioId int64 `gorm:"column:usuario_id;not null;index"`
}

func (Business) TableName() string {
	return "negocio"
}
