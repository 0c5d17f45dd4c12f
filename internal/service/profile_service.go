package service

import (
	"context"
	"errors"
	"time"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/model"
	"github.com/mailscout/profile_go_server/internal/model/dto"
	"github.com/mailscout/profile_go_server/internal/pkg/cache"
	"github.com/mailscout/profile_go_server/internal/repository"
)

var ErrProfileNotFound = errors.New("档案不存在")

type ProfileService struct {
	profileRepo *repository.ProfileRepository
	cache       *cache.ProfileCache // 可为 nil
	cfg         *config.Config
}

func NewProfileService(profileRepo *repository.ProfileRepository, profileCache *cache.ProfileCache, cfg *config.Config) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		cache:       profileCache,
		cfg:         cfg,
	}
}

// GetProfile 获取档案详情，优先读缓存
func (s *ProfileService) GetProfile(ctx context.Context, id string) (*dto.ProfileInfo, error) {
	if s.cache != nil {
		if profile, err := s.cache.Get(ctx, id); err == nil {
			return BuildProfileInfo(profile), nil
		}
	}

	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		// 缓存写失败不影响主流程
		_ = s.cache.Set(ctx, profile)
	}

	return BuildProfileInfo(profile), nil
}

// UpdateProfile 更新档案的展示字段
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*dto.ProfileInfo, error) {
	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if len(fields) == 0 {
		return s.GetProfile(ctx, id)
	}

	if err := s.profileRepo.UpdateFields(id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, id)

	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return BuildProfileInfo(profile), nil
}

// AdminPatchProfile 管理端修正档案字段
func (s *ProfileService) AdminPatchProfile(ctx context.Context, id string, req *dto.AdminPatchProfileRequest) (*dto.ProfileInfo, error) {
	fields := map[string]interface{}{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if len(fields) == 0 {
		return s.GetProfile(ctx, id)
	}

	if err := s.profileRepo.UpdateFields(id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, id)

	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return BuildProfileInfo(profile), nil
}

func (s *ProfileService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}

func BuildProfileInfo(profile *model.Profile) *dto.ProfileInfo {
	info := &dto.ProfileInfo{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Plan:      profile.Plan,
		CreatedAt: profile.CreatedAt.Format(time.RFC3339),
		Credits: &dto.CreditInfo{
			Find:   profile.CreditsFind,
			Verify: profile.CreditsVerify,
		},
	}

	if profile.PlanExpiry != nil {
		info.PlanExpiry = profile.PlanExpiry.Format(time.RFC3339)
	}

	return info
}
