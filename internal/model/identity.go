package model

// Identity 认证调用方的身份信息，由 JWT 或 OAuth 回调解析得到
type Identity struct {
	ID    string // 身份提供方 subject，必填
	Email string
	Name  string // 显示名提示，可为空
}
