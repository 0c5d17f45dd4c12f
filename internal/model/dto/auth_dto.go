package dto

// LoginResponse 登录响应
type LoginResponse struct {
	Token   string       `json:"token"`
	Profile *ProfileInfo `json:"profile"`
}
