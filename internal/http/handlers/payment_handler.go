package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/dto"
	"github.com/ignatzorin/freelance-escrow/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-escrow/internal/service"
)

// PaymentHandler — зачисление средств и справки по эскроу.
type PaymentHandler struct {
	admin  *service.AdminService
	escrow *service.EscrowService
}

func NewPaymentHandler(admin *service.AdminService, escrow *service.EscrowService) *PaymentHandler {
	return &PaymentHandler{admin: admin, escrow: escrow}
}

// Deposit POST /payments/deposit — зачисление свободных средств.
func (h *PaymentHandler) Deposit(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.DepositRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	balance, err := h.admin.Deposit(address, req.Amount)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contract_balance": balance})
}

// EscrowOf GET /payments/escrow/:id — остаток эскроу милстоуна.
func (h *PaymentHandler) EscrowOf(c *gin.Context) {
	milestoneID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"milestone_id": milestoneID,
		"escrow":       h.escrow.EscrowOf(milestoneID),
	})
}

// TotalEscrow GET /payments/escrow — суммарный заблокированный объём.
func (h *PaymentHandler) TotalEscrow(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total_escrow": h.escrow.TotalEscrow()})
}
