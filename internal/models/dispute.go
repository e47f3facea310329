package models

import "time"

// Статусы спора.
const (
	DisputeStatusOpen     = "open"
	DisputeStatusResolved = "resolved"
)

// Dispute описывает спор по сданному милстоуну.
// Arbitrator заполняется при разрешении (модель одного арбитра — владельца).
type Dispute struct {
	ID          uint64    `json:"id"`
	MilestoneID uint64    `json:"milestone_id"`
	JobID       uint64    `json:"job_id"`
	Initiator   Address   `json:"initiator"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	Arbitrator  Address   `json:"arbitrator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ResolvedAt  time.Time `json:"resolved_at,omitzero"`
}
