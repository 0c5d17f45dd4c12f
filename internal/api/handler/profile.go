package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mailscout/profile_go_server/internal/api/middleware"
	"github.com/mailscout/profile_go_server/internal/model/dto"
	"github.com/mailscout/profile_go_server/internal/pkg/response"
	"github.com/mailscout/profile_go_server/internal/service"
)

type ProfileHandler struct {
	bootstrap      *service.BootstrapService
	profileService *service.ProfileService
}

func NewProfileHandler(bootstrap *service.BootstrapService, profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		bootstrap:      bootstrap,
		profileService: profileService,
	}
}

// Bootstrap 首次访问建档，幂等
// POST /api/v1/profile/bootstrap
func (h *ProfileHandler) Bootstrap(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	profile, err := h.bootstrap.EnsureProfileWithRetry(c.Request.Context(), identity, 0)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIdentity) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, service.BuildProfileInfo(profile))
}

// GetProfile 获取当前用户档案
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.profileService.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.NotFoundError(c, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}

// UpdateProfile 更新档案展示字段
// PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.profileService.UpdateProfile(c.Request.Context(), identity.ID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.NotFoundError(c, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "更新成功", info)
}
