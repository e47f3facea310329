package models

import "time"

// Статусы отклика. Ровно один отклик на заказ достигает accepted,
// остальные pending автоматически переводятся в rejected.
const (
	ProposalStatusPending   = "pending"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusRejected  = "rejected"
	ProposalStatusWithdrawn = "withdrawn"
)

// Proposal представляет отклик фрилансера на заказ.
type Proposal struct {
	ID             uint64    `json:"id"`
	JobID          uint64    `json:"job_id"`
	Freelancer     Address   `json:"freelancer"`
	ProposalHash   string    `json:"proposal_hash"`
	ProposedBudget uint64    `json:"proposed_budget"`
	DurationDays   uint64    `json:"duration_days"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
