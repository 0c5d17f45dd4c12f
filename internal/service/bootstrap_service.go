package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/model"
	"github.com/mailscout/profile_go_server/internal/repository"
)

var (
	ErrInvalidIdentity = errors.New("身份标识无效")
	ErrBootstrapFailed = errors.New("档案初始化失败")
)

// 免费套餐的出厂默认值，配置缺失时兜底
const (
	defaultPlan          = "free"
	defaultCreditsFind   = 25
	defaultCreditsVerify = 25
	defaultDurationDays  = 7

	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// ProfileStore 档案存储能力：点查、插入、字段更新
// 未命中必须返回 repository.ErrNotFound，主键冲突必须返回 repository.ErrDuplicate
type ProfileStore interface {
	GetByID(id string) (*model.Profile, error)
	Create(profile *model.Profile) error
	UpdateFields(id string, fields map[string]interface{}) error
}

// WelcomeSender 首次建档后的欢迎通知，实现可以直接发信或投递到队列
type WelcomeSender interface {
	SendWelcome(to, name string) error
}

// BootstrapService 保证每个身份在 profiles 表中恰好存在一条档案，
// 首次访问时按默认值创建，依赖存储层的主键唯一约束处理并发创建
type BootstrapService struct {
	store   ProfileStore
	cfg     *config.Config
	welcome WelcomeSender // 可为 nil，欢迎邮件尽力而为
}

func NewBootstrapService(store ProfileStore, welcome WelcomeSender, cfg *config.Config) *BootstrapService {
	return &BootstrapService{
		store:   store,
		cfg:     cfg,
		welcome: welcome,
	}
}

// EnsureProfile 查找或创建档案
// 查找未命中才会进入创建分支，其他存储错误原样上抛，绝不当成"不存在"处理；
// 插入撞上唯一约束说明并发方已创建，回查并返回已有记录
func (s *BootstrapService) EnsureProfile(identity *model.Identity) (*model.Profile, error) {
	if identity == nil || identity.ID == "" {
		return nil, ErrInvalidIdentity
	}

	profile, err := s.store.GetByID(identity.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询档案失败: %w", err)
	}

	created := s.newProfile(identity)
	if err := s.store.Create(created); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// 并发创建竞争失败，以已有记录为准
			existing, err := s.store.GetByID(identity.ID)
			if err != nil {
				return nil, fmt.Errorf("回查档案失败: %w", err)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("创建档案失败: %w", err)
	}

	if s.welcome != nil && created.Email != "" {
		_ = s.welcome.SendWelcome(created.Email, created.FullName)
	}

	return created, nil
}

// EnsureProfileWithRetry 带有界重试的查找或创建
// 线性退避：第 n 次失败后等待 n×baseDelay；maxAttempts <= 0 时取配置值，默认 3 次。
// 每次尝试都是独立完整的查找-创建序列，身份非法不重试
func (s *BootstrapService) EnsureProfileWithRetry(ctx context.Context, identity *model.Identity, maxAttempts int) (*model.Profile, error) {
	if identity == nil || identity.ID == "" {
		return nil, ErrInvalidIdentity
	}

	if maxAttempts <= 0 {
		maxAttempts = s.maxAttempts()
	}
	baseDelay := s.baseDelay()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		profile, err := s.EnsureProfile(identity)
		if err == nil {
			return profile, nil
		}
		if errors.Is(err, ErrInvalidIdentity) {
			return nil, err
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrBootstrapFailed, ctx.Err())
		case <-time.After(time.Duration(attempt) * baseDelay):
		}
	}

	return nil, fmt.Errorf("%w（尝试 %d 次）: %w", ErrBootstrapFailed, maxAttempts, lastErr)
}

// newProfile 按默认值从身份派生新档案
func (s *BootstrapService) newProfile(identity *model.Identity) *model.Profile {
	level := s.freeLevel()
	expiry := time.Now().Add(time.Duration(level.DurationDays) * 24 * time.Hour)

	return &model.Profile{
		ID:            identity.ID,
		Email:         identity.Email,
		FullName:      deriveFullName(identity),
		Plan:          defaultPlan,
		CreditsFind:   level.CreditsFind,
		CreditsVerify: level.CreditsVerify,
		PlanExpiry:    &expiry,
	}
}

func (s *BootstrapService) freeLevel() config.PlanLevel {
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

func (s *BootstrapService) maxAttempts() int {
	if s.cfg != nil && s.cfg.Bootstrap.MaxAttempts > 0 {
		return s.cfg.Bootstrap.MaxAttempts
	}
	return defaultMaxAttempts
}

func (s *BootstrapService) baseDelay() time.Duration {
	if s.cfg != nil && s.cfg.Bootstrap.BaseDelayMS > 0 {
		return time.Duration(s.cfg.Bootstrap.BaseDelayMS) * time.Millisecond
	}
	return defaultBaseDelay
}

// deriveFullName 显示名优先取身份提示，否则取邮箱 @ 前的本地部分
func deriveFullName(identity *model.Identity) string {
	if identity.Name != "" {
		return identity.Name
	}
	if at := strings.Index(identity.Email, "@"); at > 0 {
		return identity.Email[:at]
	}
	return ""
}
