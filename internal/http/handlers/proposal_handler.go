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

// ProposalHandler — HTTP-срез откликов на заказы.
type ProposalHandler struct {
	proposals *service.ProposalService
}

func NewProposalHandler(proposals *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// Submit POST /jobs/:id/proposals
func (h *ProposalHandler) Submit(c *gin.Context) {
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

	var req dto.SubmitProposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateReference("proposal hash", req.ProposalHash); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateDuration(req.DurationDays); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.proposals.Submit(address, jobID, req.ProposalHash, req.BidAmount, req.DurationDays)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// Accept POST /proposals/:id/accept
func (h *ProposalHandler) Accept(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	proposalID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.proposals.Accept(proposalID, address)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// Withdraw POST /proposals/:id/withdraw
func (h *ProposalHandler) Withdraw(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	proposalID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.proposals.Withdraw(proposalID, address)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// Get GET /proposals/:id
func (h *ProposalHandler) Get(c *gin.Context) {
	proposalID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.proposals.Get(proposalID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// ListForJob GET /jobs/:id/proposals
func (h *ProposalHandler) ListForJob(c *gin.Context) {
	jobID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	ids := h.proposals.ForJob(jobID)
	proposals := make([]models.Proposal, 0, len(ids))
	for _, id := range ids {
		if p, err := h.proposals.Get(id); err == nil {
			proposals = append(proposals, p)
		}
	}

	c.JSON(http.StatusOK, proposals)
}
