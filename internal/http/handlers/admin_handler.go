package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/dto"
	"github.com/ignatzorin/freelance-escrow/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/service"
	"github.com/ignatzorin/freelance-escrow/internal/validation"
)

// AdminHandler — административный HTTP-срез: комиссия, пауза, аварийный
// вывод и платформенная статистика.
type AdminHandler struct {
	admin  *service.AdminService
	escrow *service.EscrowService
}

func NewAdminHandler(admin *service.AdminService, escrow *service.EscrowService) *AdminHandler {
	return &AdminHandler{admin: admin, escrow: escrow}
}

// UpdateFee PUT /admin/fee
func (h *AdminHandler) UpdateFee(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateFeeRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	fee, err := h.admin.UpdateFee(address, *req.FeeBps)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee_bps": fee})
}

// TogglePause POST /admin/pause
func (h *AdminHandler) TogglePause(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	paused, err := h.admin.TogglePause(address)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paused": paused})
}

// EmergencyWithdraw POST /admin/withdraw
func (h *AdminHandler) EmergencyWithdraw(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.EmergencyWithdrawRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateAddress(req.To); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.admin.EmergencyWithdraw(address, models.Address(req.To), req.Amount); err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "средства выведены", gin.H{"amount": req.Amount})
}

// Platform GET /platform — публичные параметры платформы.
func (h *AdminHandler) Platform(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PlatformResponse{
		Owner:           h.admin.Owner(),
		FeeBps:          h.admin.Fee(),
		Paused:          h.admin.IsPaused(),
		ContractBalance: h.admin.ContractBalance(),
		TotalEscrow:     h.escrow.TotalEscrow(),
	})
}

// Stats GET /platform/stats — агрегированная статистика.
func (h *AdminHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.PlatformStats())
}

// Counters GET /platform/counters — счётчики сущностей.
func (h *AdminHandler) Counters(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.Counters())
}
