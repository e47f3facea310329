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

// MilestoneHandler — HTTP-срез милстоунов и эскроу.
type MilestoneHandler struct {
	escrow *service.EscrowService
}

func NewMilestoneHandler(escrow *service.EscrowService) *MilestoneHandler {
	return &MilestoneHandler{escrow: escrow}
}

// Create POST /jobs/:id/milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	jobID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CreateMilestoneRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateTitle(req.Title); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateReference("description hash", req.DescriptionHash); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	deadline, err := req.ParseDeadline()
	if err != nil {
		common.RespondBadRequest(c, "неверный формат дедлайна, ожидается RFC3339")
		return
	}

	milestone, err := h.escrow.Create(jobID, address, req.Title, req.DescriptionHash, req.Amount, deadline, req.TransferredValue)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, milestone)
}

// Submit POST /milestones/:id/submit
func (h *MilestoneHandler) Submit(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	milestoneID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	milestone, err := h.escrow.Submit(milestoneID, address)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// Approve POST /milestones/:id/approve
func (h *MilestoneHandler) Approve(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	milestoneID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ApproveMilestoneRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	milestone, err := h.escrow.Approve(milestoneID, address, req.Rating)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// Get GET /milestones/:id — милстоун вместе с остатком эскроу.
func (h *MilestoneHandler) Get(c *gin.Context) {
	milestoneID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	milestone, escrowBalance, err := h.escrow.WithEscrow(milestoneID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMilestoneResponse(milestone, escrowBalance))
}

// ListForJob GET /jobs/:id/milestones
func (h *MilestoneHandler) ListForJob(c *gin.Context) {
	jobID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	ids := h.escrow.ForJob(jobID)
	milestones := make([]models.Milestone, 0, len(ids))
	for _, id := range ids {
		if m, err := h.escrow.Get(id); err == nil {
			milestones = append(milestones, m)
		}
	}

	c.JSON(http.StatusOK, milestones)
}
