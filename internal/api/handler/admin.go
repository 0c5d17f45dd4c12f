package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mailscout/profile_go_server/internal/model/dto"
	"github.com/mailscout/profile_go_server/internal/pkg/response"
	"github.com/mailscout/profile_go_server/internal/service"
)

// AdminHandler 服务密钥保护的维护接口
type AdminHandler struct {
	profileService *service.ProfileService
	planService    *service.PlanService
	creditService  *service.CreditService
}

func NewAdminHandler(
	profileService *service.ProfileService,
	planService *service.PlanService,
	creditService *service.CreditService,
) *AdminHandler {
	return &AdminHandler{
		profileService: profileService,
		planService:    planService,
		creditService:  creditService,
	}
}

// GetProfile 按 ID 获取任意档案
// GET /api/v1/admin/profiles/:id
func (h *AdminHandler) GetProfile(c *gin.Context) {
	info, err := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
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

// PatchProfile 修正档案字段
// PATCH /api/v1/admin/profiles/:id
func (h *AdminHandler) PatchProfile(c *gin.Context) {
	var req dto.AdminPatchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.profileService.AdminPatchProfile(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.NotFoundError(c, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "修正成功", info)
}

// GrantPlan 授予套餐
// POST /api/v1/admin/profiles/:id/plan
func (h *AdminHandler) GrantPlan(c *gin.Context) {
	var req dto.GrantPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.planService.GrantPlan(c.Request.Context(), c.Param("id"), req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPlan):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			response.NotFoundError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "套餐已授予", info)
}

// RefundCredit 退还积分（下游操作失败后的补偿）
// POST /api/v1/admin/profiles/:id/credits/:type/refund
func (h *AdminHandler) RefundCredit(c *gin.Context) {
	balance, err := h.creditService.Refund(c.Request.Context(), c.Param("id"), c.Param("type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCreditType):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			response.NotFoundError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, balance)
}

// SweepExpired 立即执行套餐到期降级
// POST /api/v1/admin/sweep-expired
func (h *AdminHandler) SweepExpired(c *gin.Context) {
	count, err := h.planService.SweepExpired(c.Request.Context())
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"downgraded": count})
}
