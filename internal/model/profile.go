package model

import (
	"time"
)

// Profile 用户档案，ID 来自身份提供方的 subject，全表唯一
type Profile struct {
	ID            string     `gorm:"primaryKey;size:100" json:"id"`
	Email         string     `gorm:"size:100;index" json:"email"`
	FullName      string     `gorm:"size:100" json:"full_name"`
	Plan          string     `gorm:"size:20;default:free;index" json:"plan"`
	CreditsFind   int        `gorm:"default:25" json:"credits_find"`
	CreditsVerify int        `gorm:"default:25" json:"credits_verify"`
	PlanExpiry    *time.Time `gorm:"index" json:"plan_expiry,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
