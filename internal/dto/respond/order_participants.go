package respond

// OrderParticipants 订单（房间）的两个参与者
// prestador_id 取自商家表的归属用户，不是商家本身的主键
type OrderParticipants struct {
	ClienteId   int64 `json:"clienteId" gorm:"column:cliente_id"`
	PrestadorId int64 `json:"prestadorId" gorm:"column:prestador_id"`
}

// Contains 判断某用户是否为该订单的参与者
func (p OrderParticipants) Contains(userID int64) bool {
	return userID == p.ClienteId || userID == p.PrestadorId
}

// Other 返回相对于给定用户的另一方参与者
func (p OrderParticipants) Other(userID int64) int64 {
	if userID == p.ClienteId {
		return p.PrestadorId
	}
	return p.ClienteId
}
