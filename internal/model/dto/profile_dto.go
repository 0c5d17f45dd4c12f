package dto

// ProfileInfo 档案信息
type ProfileInfo struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	Plan       string      `json:"plan"`
	PlanExpiry string      `json:"plan_expiry,omitempty"`
	CreatedAt  string      `json:"created_at"`
	Credits    *CreditInfo `json:"credits,omitempty"`
}

// CreditInfo 积分余额
type CreditInfo struct {
	Find   int `json:"find"`
	Verify int `json:"verify"`
}

// UpdateProfileRequest 更新档案请求
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
}

// AdminPatchProfileRequest 管理端修正档案字段
type AdminPatchProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
}

// GrantPlanRequest 管理端授予套餐
type GrantPlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}
