package models

import "time"

// Статусы милстоуна. Разрешение спора в пользу клиента возвращает
// милстоун в created: слот можно профинансировать и сдать повторно.
const (
	MilestoneStatusCreated    = "created"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusSubmitted  = "submitted"
	MilestoneStatusApproved   = "approved"
	MilestoneStatusDisputed   = "disputed"
)

// Milestone — этап заказа с собственной суммой на эскроу.
// Дедлайн хранится как справочная дата и автоматически не истекает.
type Milestone struct {
	ID              uint64    `json:"id"`
	JobID           uint64    `json:"job_id"`
	Title           string    `json:"title"`
	DescriptionHash string    `json:"description_hash"`
	Amount          uint64    `json:"amount"`
	Deadline        time.Time `json:"deadline"`
	Status          string    `json:"status"`
	CompletedAt     time.Time `json:"completed_at,omitzero"`
	IsPaid          bool      `json:"is_paid"`
	CreatedAt       time.Time `json:"created_at"`
}

// CanSubmit сообщает, может ли фрилансер сдать милстоун на приёмку.
func (m *Milestone) CanSubmit() bool {
	return m.Status == MilestoneStatusCreated || m.Status == MilestoneStatusInProgress
}
