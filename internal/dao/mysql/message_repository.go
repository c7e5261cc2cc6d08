package mysql

import (
	"time"

	"easybiz_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓库
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "mensagem não encontrada")
	}
	return nil
}

func (r *messageRepository) FindByPedidoID(pedidoID int64) ([]model.Message, error) {
	var messages []model.Message
	// 雪花 ID 随时间递增，同一时刻的消息用 ID 裁决先后
	err := r.db.Where("pedido_servico_id = ?", pedidoID).
		Order("enviado_em ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBError(err, "mensagem não encontrada")
	}
	return messages, nil
}

func (r *messageRepository) FindByID(id int64) (*model.Message, error) {
	var message model.Message
	if err := r.db.Take(&message, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err, "mensagem não encontrada")
	}
	return &message, nil
}

func (r *messageRepository) MarkRead(id int64, at time.Time) (int64, error) {
	// 条件更新保证幂等：已读消息不会被再次更新，lida_em 保持首次已读时间
	result := r.db.Model(&model.Message{}).
		Where("id = ? AND lida = ?", id, false).
		Updates(map[string]any{"lida": true, "lida_em": at})
	if result.Error != nil {
		return 0, wrapDBError(result.Error, "mensagem não encontrada")
	}
	return result.RowsAffected, nil
}

func (r *messageRepository) MarkAllRead(pedidoID int64, readerID int64, at time.Time) (int64, error) {
	// 只更新对端发来的未读消息，自己发的消息不参与已读状态
	result := r.db.Model(&model.Message{}).
		Where("pedido_servico_id = ? AND remetente_id <> ? AND lida = ?", pedidoID, readerID, false).
		Updates(map[string]any{"lida": true, "lida_em": at})
	if result.Error != nil {
		return 0, wrapDBError(result.Error, "mensagem não encontrada")
	}
	return result.RowsAffected, nil
}

func (r *messageRepository) LastRead(pedidoID int64, excludeRemetenteID int64) (*time.Time, error) {
	var lastRead *time.Time
	err := r.db.Model(&model.Message{}).
		Select("MAX(lida_em)").
		Where("pedido_servico_id = ? AND remetente_id <> ? AND lida = ?", pedidoID, excludeRemetenteID, true).
		Scan(&lastRead).Error
	if err != nil {
		return nil, wrapDBError(err, "mensagem não encontrada")
	}
	return lastRead, nil
}
