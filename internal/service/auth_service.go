package service

import (
	"context"
	"fmt"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/model"
	"github.com/mailscout/profile_go_server/internal/model/dto"
	"github.com/mailscout/profile_go_server/internal/pkg/jwt"
	"github.com/mailscout/profile_go_server/internal/pkg/oauth"
)

// AuthService GitHub OAuth 登录：换取身份后交给 BootstrapService 保证档案存在
type AuthService struct {
	bootstrap   *BootstrapService
	cfg         *config.Config
	githubOAuth *oauth.GithubOAuth
}

func NewAuthService(bootstrap *BootstrapService, cfg *config.Config) *AuthService {
	return &AuthService{
		bootstrap: bootstrap,
		cfg:       cfg,
		githubOAuth: oauth.NewGithubOAuth(
			cfg.OAuth.Github.ClientID,
			cfg.OAuth.Github.ClientSecret,
			cfg.OAuth.Github.RedirectURI,
		),
	}
}

// GetGithubAuthURL 获取 GitHub 授权 URL
func (s *AuthService) GetGithubAuthURL(state string) string {
	return s.githubOAuth.GetAuthURL(state)
}

// GithubCallback 处理 GitHub OAuth 回调，返回本服务签发的 Token
func (s *AuthService) GithubCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.githubOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	githubUser, err := s.githubOAuth.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get github user: %w", err)
	}

	identity := &model.Identity{
		ID:    fmt.Sprintf("github|%d", githubUser.ID),
		Email: githubUser.Email,
		Name:  githubUser.Name,
	}
	if identity.Name == "" {
		identity.Name = githubUser.Login
	}

	profile, err := s.bootstrap.EnsureProfileWithRetry(ctx, identity, 0)
	if err != nil {
		return nil, err
	}

	signed, err := jwt.GenerateToken(profile.ID, profile.Email, profile.FullName, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:   signed,
		Profile: BuildProfileInfo(profile),
	}, nil
}
