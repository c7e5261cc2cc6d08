package mysql

import (
	"easybiz_chat_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id int64) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Take(&user, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err, "usuário não encontrado")
	}
	return &user, nil
}
