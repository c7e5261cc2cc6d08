package model

// UserInfo 平台用户的展示信息
type UserInfo struct {
	Id           int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	NomeCompleto string `gorm:"column:nome_completo;size:120"`
	AvatarURL    string `gorm:"column:avatar_url;size:255"`
}

func (UserInfo) TableName() string {
	return "usuario"
}
