package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/dto"
	"github.com/ignatzorin/freelance-escrow/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-escrow/internal/service"
	"github.com/ignatzorin/freelance-escrow/internal/validation"
)

// JobHandler — HTTP-срез доски заказов.
type JobHandler struct {
	jobs      *service.JobService
	proposals *service.ProposalService
	escrow    *service.EscrowService
}

func NewJobHandler(jobs *service.JobService, proposals *service.ProposalService, escrow *service.EscrowService) *JobHandler {
	return &JobHandler{jobs: jobs, proposals: proposals, escrow: escrow}
}

// PostJob POST /jobs
func (h *JobHandler) PostJob(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.PostJobRequest
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
	if err := validation.ValidateSkills(req.SkillsRequired); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	deadline, err := req.ParseDeadline()
	if err != nil {
		common.RespondBadRequest(c, "неверный формат дедлайна, ожидается RFC3339")
		return
	}

	job, err := h.jobs.Post(address, req.Title, req.DescriptionHash, req.SkillsRequired, req.Budget, deadline)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJob GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	job, err := h.jobs.Get(jobID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobDetailsResponse{
		Job:          job,
		ProposalIDs:  h.proposals.ForJob(jobID),
		MilestoneIDs: h.escrow.ForJob(jobID),
	})
}

// ListJobs GET /jobs — активные заказы с пагинацией.
func (h *JobHandler) ListJobs(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	ids := h.jobs.ListActive(offset, limit)
	jobs := h.jobs.GetMany(ids)

	c.JSON(http.StatusOK, dto.PaginatedJobsResponse{
		Data: jobs,
		Pagination: dto.Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: len(jobs) == limit,
		},
	})
}

// BatchJobs GET /jobs/batch?ids=1,2,3 — пакетная проекция заказов.
// Отсутствующие идентификаторы отдаются нулевой заглушкой на своей позиции.
func (h *JobHandler) BatchJobs(c *gin.Context) {
	ids, err := common.ParseIDList(c.Query("ids"))
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, h.jobs.GetMany(ids))
}

// MyJobs GET /jobs/my
func (h *JobHandler) MyJobs(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	jobs := h.jobs.GetMany(h.jobs.ForUser(address))
	c.JSON(http.StatusOK, jobs)
}

// CancelJob DELETE /jobs/:id
func (h *JobHandler) CancelJob(c *gin.Context) {
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

	job, err := h.jobs.Cancel(jobID, address)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CompleteJob POST /jobs/:id/complete
func (h *JobHandler) CompleteJob(c *gin.Context) {
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

	job, err := h.escrow.CompleteJob(jobID, address)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
