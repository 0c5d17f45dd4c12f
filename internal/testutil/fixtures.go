package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/mailscout/profile_go_server/internal/model"
)

// TestProfile 创建测试档案
func TestProfile(t *testing.T, db *gorm.DB, opts ...func(*model.Profile)) *model.Profile {
	t.Helper()

	n := time.Now().UnixNano()
	expiry := time.Now().Add(7 * 24 * time.Hour)
	profile := &model.Profile{
		ID:            fmt.Sprintf("auth0|%d", n),
		Email:         fmt.Sprintf("test_%d@example.com", n),
		FullName:      fmt.Sprintf("Test User %d", n%10000),
		Plan:          "free",
		CreditsFind:   25,
		CreditsVerify: 25,
		PlanExpiry:    &expiry,
	}

	for _, opt := range opts {
		opt(profile)
	}

	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return profile
}

// WithID 设置档案 ID
func WithID(id string) func(*model.Profile) {
	return func(p *model.Profile) {
		p.ID = id
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.Profile) {
	return func(p *model.Profile) {
		p.Email = email
	}
}

// WithPlan 设置套餐与积分
func WithPlan(plan string, find, verify int) func(*model.Profile) {
	return func(p *model.Profile) {
		p.Plan = plan
		p.CreditsFind = find
		p.CreditsVerify = verify
	}
}

// WithPlanExpiry 设置套餐到期时间
func WithPlanExpiry(expiry time.Time) func(*model.Profile) {
	return func(p *model.Profile) {
		p.PlanExpiry = &expiry
	}
}

// WithCredits 设置积分余额
func WithCredits(find, verify int) func(*model.Profile) {
	return func(p *model.Profile) {
		p.CreditsFind = find
		p.CreditsVerify = verify
	}
}
