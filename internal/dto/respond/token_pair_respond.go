package respond

// TokenPairRespond 刷新令牌接口返回的新令牌对
type TokenPairRespond struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
