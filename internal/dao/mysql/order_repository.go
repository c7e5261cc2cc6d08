package mysql

import (
	"easybiz_chat_server/internal/dto/respond"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetParticipants(pedidoID int64) (*respond.OrderParticipants, error) {
	var participants respond.OrderParticipants
	// 服务提供者一侧需要穿过商家表取归属用户
	err := r.db.Table("pedido_servico").
		Select("pedido_servico.cliente_id AS cliente_id, negocio.usuario_id AS prestador_id").
		Joins("JOIN negocio ON negocio.id = pedido_servico.negocio_id").
		Where("pedido_servico.id = ?", pedidoID).
		Take(&participants).Error
	if err != nil {
		return nil, wrapDBError(err, "pedido não encontrado")
	}
	return &participants, nil
}
