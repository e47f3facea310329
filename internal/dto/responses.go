package dto

import (
	"github.com/ignatzorin/freelance-escrow/internal/models"
)

// MilestoneResponse — милстоун вместе с текущим остатком его эскроу.
type MilestoneResponse struct {
	models.Milestone
	EscrowBalance uint64 `json:"escrow_balance"`
}

// NewMilestoneResponse собирает ответ из милстоуна и остатка эскроу.
func NewMilestoneResponse(m models.Milestone, escrow uint64) *MilestoneResponse {
	return &MilestoneResponse{
		Milestone:     m,
		EscrowBalance: escrow,
	}
}

// JobDetailsResponse — заказ вместе с идентификаторами откликов и милстоунов.
type JobDetailsResponse struct {
	models.Job
	ProposalIDs  []uint64 `json:"proposal_ids"`
	MilestoneIDs []uint64 `json:"milestone_ids"`
}

// PaginatedJobsResponse — страница списка активных заказов.
type PaginatedJobsResponse struct {
	Data       []models.Job `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// Pagination — метаданные страницы.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// PlatformResponse — параметры платформы.
type PlatformResponse struct {
	Owner           models.Address `json:"owner"`
	FeeBps          uint64         `json:"fee_bps"`
	Paused          bool           `json:"paused"`
	ContractBalance uint64         `json:"contract_balance"`
	TotalEscrow     uint64         `json:"total_escrow"`
}

// ErrorResponse — стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse — стандартный успешный ответ.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
