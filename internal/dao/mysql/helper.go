package mysql

import (
	"errors"

	"easybiz_chat_server/pkg/errorx"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// wrapDBError 把 gorm 错误统一转换为业务错误码
// 记录未找到映射为 CodeNotFound，其它数据库错误映射为 CodeDBError
func wrapDBError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.New(errorx.CodeNotFound, notFoundMsg)
	}
	zap.L().Error("数据库操作失败", zap.Error(err))
	return errorx.Wrap(err, errorx.CodeDBError, "erro interno no banco de dados")
}
