package models

import "time"

// Статусы заказа. Закрытое множество: переходы вне
// open -> in_progress -> completed | disputed и open -> cancelled запрещены.
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
	JobStatusDisputed   = "disputed"
)

// Job описывает заказ клиента.
// После принятия отклика Budget перезаписывается ставкой фрилансера.
type Job struct {
	ID                 uint64    `json:"id"`
	Client             Address   `json:"client"`
	Title              string    `json:"title"`
	DescriptionHash    string    `json:"description_hash"`
	SkillsRequired     []string  `json:"skills_required"`
	Budget             uint64    `json:"budget"`
	Deadline           time.Time `json:"deadline"`
	Status             string    `json:"status"`
	AssignedFreelancer Address   `json:"assigned_freelancer"`
	CreatedAt          time.Time `json:"created_at"`
}

// IsActive сообщает, участвует ли заказ в выдаче активных заказов.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusOpen || j.Status == JobStatusInProgress
}
