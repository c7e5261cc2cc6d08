package respond

// UserDisplayRespond 用户展示信息视图
type UserDisplayRespond struct {
	Id        int64  `json:"id"`
	Nome      string `json:"nome"`
	AvatarURL string `json:"avatarUrl"`
}
