package mysql

import "gorm.io/gorm"

// Repositories 聚合所有仓库，统一注入服务层
type Repositories struct {
	Message MessageRepository
	Order   OrderRepository
	User    UserRepository
}

// NewRepositories 基于同一个数据库连接创建全部仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Message: NewMessageRepository(db),
		Order:   NewOrderRepository(db),
		User:    NewUserRepository(db),
	}
}
