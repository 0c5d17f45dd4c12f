package service

import (
	"context"
	"errors"
	"time"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/model/dto"
	"github.com/mailscout/profile_go_server/internal/pkg/cache"
	"github.com/mailscout/profile_go_server/internal/repository"
)

var ErrUnknownPlan = errors.New("未知的套餐")

// ExpiryNotifier 套餐到期后的提醒通知，实现可以直接发信或投递到队列
type ExpiryNotifier interface {
	SendPlanExpired(to, plan string) error
}

// PlanService 套餐授予与到期降级
type PlanService struct {
	profileRepo *repository.ProfileRepository
	cache       *cache.ProfileCache // 可为 nil
	notifier    ExpiryNotifier      // 可为 nil，到期提醒尽力而为
	cfg         *config.Config
}

func NewPlanService(profileRepo *repository.ProfileRepository, profileCache *cache.ProfileCache, notifier ExpiryNotifier, cfg *config.Config) *PlanService {
	return &PlanService{
		profileRepo: profileRepo,
		cache:       profileCache,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// GrantPlan 授予套餐：按配置重置积分并设置到期时间
func (s *PlanService) GrantPlan(ctx context.Context, id, plan string) (*dto.ProfileInfo, error) {
	level, ok := s.cfg.Plans[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	expiry := time.Now().Add(time.Duration(level.DurationDays) * 24 * time.Hour)
	fields := map[string]interface{}{
		"plan":           plan,
		"credits_find":   level.CreditsFind,
		"credits_verify": level.CreditsVerify,
		"plan_expiry":    expiry,
	}

	if err := s.profileRepo.UpdateFields(id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}

	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return BuildProfileInfo(profile), nil
}

// SweepExpired 把套餐到期的付费档案降回 free，返回降级数量
func (s *PlanService) SweepExpired(ctx context.Context) (int, error) {
	expired, err := s.profileRepo.ListExpiredPlans(time.Now())
	if err != nil {
		return 0, err
	}

	level := s.freeLevel()
	downgraded := 0
	for _, profile := range expired {
		fields := map[string]interface{}{
			"plan":           defaultPlan,
			"credits_find":   level.CreditsFind,
			"credits_verify": level.CreditsVerify,
			"plan_expiry":    nil,
		}
		if err := s.profileRepo.UpdateFields(profile.ID, fields); err != nil {
			// 单条失败不中断整轮扫描
			continue
		}
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, profile.ID)
		}
		if s.notifier != nil && profile.Email != "" {
			// profile 此时仍带着降级前的套餐名
			_ = s.notifier.SendPlanExpired(profile.Email, profile.Plan)
		}
		downgraded++
	}

	return downgraded, nil
}

func (s *PlanService) freeLevel() config.PlanLevel {
	if s.cfg != nil {
		if level, ok := s.cfg.Plans[defaultPlan]; ok {
			return level
		}
	}
	return config.PlanLevel{
		CreditsFind:   defaultCreditsFind,
		CreditsVerify: defaultCreditsVerify,
		DurationDays:  defaultDurationDays,
	}
}
