package mysql

import (
	"fmt"

	"easybiz_chat_server/internal/config"
	"easybiz_chat_server/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init 连接 MySQL 并自动迁移表结构
func Init(cfg *config.MysqlConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DatabaseName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Error("连接 MySQL 失败", zap.Error(err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)

	if err = db.AutoMigrate(
		&model.UserInfo{},
		&model.Business{},
		&model.ServiceOrder{},
		&model.Message{},
	); err != nil {
		zap.L().Error("自动迁移表结构失败", zap.Error(err))
		return nil, err
	}

	zap.L().Info("MySQL 连接成功", zap.String("database", cfg.DatabaseName))
	return db, nil
}
