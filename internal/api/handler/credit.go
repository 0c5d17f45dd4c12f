package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mailscout/profile_go_server/internal/api/middleware"
	"github.com/mailscout/profile_go_server/internal/pkg/response"
	"github.com/mailscout/profile_go_server/internal/service"
)

type CreditHandler struct {
	creditService *service.CreditService
}

func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
	}
}

// GetCredits 查询积分余额
// GET /api/v1/profile/credits
func (h *CreditHandler) GetCredits(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	balance, err := h.creditService.GetBalance(identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.NotFoundError(c, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, balance)
}

// Consume 扣减一个积分
// POST /api/v1/profile/credits/:type/consume
func (h *CreditHandler) Consume(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	balance, err := h.creditService.Consume(c.Request.Context(), identity.ID, c.Param("type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCreditType):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			response.NotFoundError(c, "")
		case errors.Is(err, service.ErrInsufficientCredits):
			response.CreditError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, balance)
}
