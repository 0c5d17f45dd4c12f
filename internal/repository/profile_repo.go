package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mailscout/profile_go_server/internal/model"
)

// 存储层统一的区分性错误信号，上层只依赖这两个哨兵，不做字符串匹配
var (
	ErrNotFound  = errors.New("记录不存在")
	ErrDuplicate = errors.New("记录已存在")
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID 按主键点查，未命中返回 ErrNotFound
func (r *ProfileRepository) GetByID(id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// Create 插入档案，主键冲突返回 ErrDuplicate
func (r *ProfileRepository) Create(profile *model.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return translate(err)
	}
	return nil
}

// UpdateFields 按主键更新指定字段
func (r *ProfileRepository) UpdateFields(id string, fields map[string]interface{}) error {
	res := r.db.Model(&model.Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeCredit 原子扣减一个积分，余额不足时不更新任何行
// column 只能是 credits_find / credits_verify
func (r *ProfileRepository) ConsumeCredit(id, column string) (bool, error) {
	res := r.db.Model(&model.Profile{}).
		Where("id = ? AND "+column+" > 0", id).
		Update(column, gorm.Expr(column+" - 1"))
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RefundCredit 退还一个积分
func (r *ProfileRepository) RefundCredit(id, column string) error {
	res := r.db.Model(&model.Profile{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListExpiredPlans 列出套餐已到期的付费档案
func (r *ProfileRepository) ListExpiredPlans(now time.Time) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.
		Where("plan <> ? AND plan_expiry IS NOT NULL AND plan_expiry < ?", "free", now).
		Find(&profiles).Error
	if err != nil {
		return nil, translate(err)
	}
	return profiles, nil
}

// List 按创建时间倒序列出档案，limit <= 0 表示不限制
func (r *ProfileRepository) List(limit int) ([]model.Profile, error) {
	var profiles []model.Profile
	q := r.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, translate(err)
	}
	return profiles, nil
}

// CountByPlan 统计各套餐的档案数与积分总量
func (r *ProfileRepository) CountByPlan() ([]PlanTotals, error) {
	var totals []PlanTotals
	err := r.db.Model(&model.Profile{}).
		Select("plan, COUNT(*) AS count, SUM(credits_find) AS credits_find, SUM(credits_verify) AS credits_verify").
		Group("plan").
		Scan(&totals).Error
	if err != nil {
		return nil, translate(err)
	}
	return totals, nil
}

// PlanTotals 按套餐聚合的统计结果
type PlanTotals struct {
	Plan          string `json:"plan"`
	Count         int64  `json:"count"`
	CreditsFind   int64  `json:"credits_find"`
	CreditsVerify int64  `json:"credits_verify"`
}

// translate 把驱动错误转换为本包的哨兵错误，其余原样返回
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
