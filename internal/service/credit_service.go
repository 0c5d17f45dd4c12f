package service

import (
	"context"
	"errors"

	"github.com/mailscout/profile_go_server/internal/model/dto"
	"github.com/mailscout/profile_go_server/internal/pkg/cache"
	"github.com/mailscout/profile_go_server/internal/repository"
)

var (
	ErrInsufficientCredits = errors.New("积分不足")
	ErrUnknownCreditType   = errors.New("未知的积分类型")
)

// 积分类型对应 profiles 表的列名
const (
	CreditFind   = "find"
	CreditVerify = "verify"
)

var creditColumns = map[string]string{
	CreditFind:   "credits_find",
	CreditVerify: "credits_verify",
}

// CreditService 档案积分的扣减与退还，扣减依赖存储层的原子条件更新
type CreditService struct {
	profileRepo *repository.ProfileRepository
	cache       *cache.ProfileCache // 可为 nil
}

func NewCreditService(profileRepo *repository.ProfileRepository, profileCache *cache.ProfileCache) *CreditService {
	return &CreditService{
		profileRepo: profileRepo,
		cache:       profileCache,
	}
}

// GetBalance 查询积分余额
func (s *CreditService) GetBalance(id string) (*dto.CreditInfo, error) {
	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &dto.CreditInfo{
		Find:   profile.CreditsFind,
		Verify: profile.CreditsVerify,
	}, nil
}

// Consume 扣减一个积分，余额为零时返回 ErrInsufficientCredits
func (s *CreditService) Consume(ctx context.Context, id, creditType string) (*dto.CreditInfo, error) {
	column, ok := creditColumns[creditType]
	if !ok {
		return nil, ErrUnknownCreditType
	}

	consumed, err := s.profileRepo.ConsumeCredit(id, column)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// 没有扣到：要么档案不存在，要么余额为零
		if _, err := s.profileRepo.GetByID(id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		return nil, ErrInsufficientCredits
	}

	s.invalidate(ctx, id)
	return s.GetBalance(id)
}

// Refund 退还一个积分，用于下游操作失败后的补偿
func (s *CreditService) Refund(ctx context.Context, id, creditType string) (*dto.CreditInfo, error) {
	column, ok := creditColumns[creditType]
	if !ok {
		return nil, ErrUnknownCreditType
	}

	if err := s.profileRepo.RefundCredit(id, column); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, id)
	return s.GetBalance(id)
}

func (s *CreditService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}
