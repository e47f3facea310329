package dto

import (
	"time"
)

// IssueTokenRequest — запрос на выпуск access токена для адреса.
// Проверку владения адресом выполняет внешний шлюз.
type IssueTokenRequest struct {
	Address string `json:"address" binding:"required"`
}

// RegisterUserRequest — запрос на регистрацию участника.
type RegisterUserRequest struct {
	ProfileHash string `json:"profile_hash" binding:"required"`
}

// UpdateProfileRequest — запрос на обновление профиля участника.
type UpdateProfileRequest struct {
	ProfileHash string `json:"profile_hash" binding:"required"`
}

// PostJobRequest — запрос на публикацию заказа.
type PostJobRequest struct {
	Title           string   `json:"title" binding:"required"`
	DescriptionHash string   `json:"description_hash" binding:"required"`
	SkillsRequired  []string `json:"skills_required"`
	Budget          uint64   `json:"budget" binding:"required"`
	DeadlineAt      string   `json:"deadline_at" binding:"required"`
}

// SubmitProposalRequest — запрос на подачу отклика.
type SubmitProposalRequest struct {
	ProposalHash string `json:"proposal_hash" binding:"required"`
	BidAmount    uint64 `json:"bid_amount" binding:"required"`
	DurationDays uint64 `json:"duration_days" binding:"required"`
}

// CreateMilestoneRequest — запрос на создание милстоуна с блокировкой средств.
// TransferredValue должен в точности равняться Amount.
type CreateMilestoneRequest struct {
	Title            string `json:"title" binding:"required"`
	DescriptionHash  string `json:"description_hash" binding:"required"`
	Amount           uint64 `json:"amount" binding:"required"`
	DeadlineAt       string `json:"deadline_at" binding:"required"`
	TransferredValue uint64 `json:"transferred_value" binding:"required"`
}

// ApproveMilestoneRequest — приёмка милстоуна с оценкой исполнителя.
type ApproveMilestoneRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// RaiseDisputeRequest — запрос на открытие спора по милстоуну.
type RaiseDisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ResolveDisputeRequest — решение арбитра по спору.
type ResolveDisputeRequest struct {
	FavorFreelancer *bool `json:"favor_freelancer" binding:"required"`
}

// UpdateFeeRequest — запрос на изменение комиссии платформы.
type UpdateFeeRequest struct {
	FeeBps *uint64 `json:"fee_bps" binding:"required"`
}

// EmergencyWithdrawRequest — аварийный вывод свободного баланса.
type EmergencyWithdrawRequest struct {
	To     string `json:"to" binding:"required"`
	Amount uint64 `json:"amount" binding:"required"`
}

// DepositRequest — зачисление средств на баланс движка.
type DepositRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}

// ParseDeadline разбирает дедлайн запроса в time.Time.
func (r *PostJobRequest) ParseDeadline() (time.Time, error) {
	return time.Parse(time.RFC3339, r.DeadlineAt)
}

// ParseDeadline разбирает дедлайн милстоуна в time.Time.
func (r *CreateMilestoneRequest) ParseDeadline() (time.Time, error) {
	return time.Parse(time.RFC3339, r.DeadlineAt)
}
