package models

// Имена доменных событий, публикуемых ядром для внешних потребителей.
const (
	EventUserRegistered     = "UserRegistered"
	EventJobPosted          = "JobPosted"
	EventProposalSubmitted  = "ProposalSubmitted"
	EventProposalAccepted   = "ProposalAccepted"
	EventMilestoneCreated   = "MilestoneCreated"
	EventMilestoneSubmitted = "MilestoneSubmitted"
	EventMilestoneApproved  = "MilestoneApproved"
	EventPaymentReleased    = "PaymentReleased"
	EventReputationUpdated  = "ReputationUpdated"
	EventDisputeRaised      = "DisputeRaised"
	EventDisputeResolved    = "DisputeResolved"
)

// UserRegisteredEvent — зарегистрирован новый участник.
type UserRegisteredEvent struct {
	Address     Address `json:"address"`
	ProfileHash string  `json:"profile_hash"`
}

// JobPostedEvent — опубликован заказ.
type JobPostedEvent struct {
	JobID  uint64  `json:"job_id"`
	Client Address `json:"client"`
	Budget uint64  `json:"budget"`
}

// ProposalSubmittedEvent — подан отклик.
type ProposalSubmittedEvent struct {
	ProposalID uint64  `json:"proposal_id"`
	JobID      uint64  `json:"job_id"`
	Freelancer Address `json:"freelancer"`
}

// ProposalAcceptedEvent — отклик принят клиентом.
type ProposalAcceptedEvent struct {
	ProposalID uint64  `json:"proposal_id"`
	JobID      uint64  `json:"job_id"`
	Freelancer Address `json:"freelancer"`
}

// MilestoneCreatedEvent — создан милстоун, сумма заблокирована на эскроу.
type MilestoneCreatedEvent struct {
	MilestoneID uint64 `json:"milestone_id"`
	JobID       uint64 `json:"job_id"`
	Amount      uint64 `json:"amount"`
}

// MilestoneSubmittedEvent — милстоун сдан на приёмку.
type MilestoneSubmittedEvent struct {
	MilestoneID uint64 `json:"milestone_id"`
	JobID       uint64 `json:"job_id"`
}

// MilestoneApprovedEvent — милстоун принят.
type MilestoneApprovedEvent struct {
	MilestoneID uint64 `json:"milestone_id"`
	JobID       uint64 `json:"job_id"`
}

// PaymentReleasedEvent — выплата с эскроу.
type PaymentReleasedEvent struct {
	MilestoneID uint64  `json:"milestone_id"`
	To          Address `json:"to"`
	Amount      uint64  `json:"amount"`
}

// ReputationUpdatedEvent — изменена репутация участника.
type ReputationUpdatedEvent struct {
	Address    Address `json:"address"`
	Reputation uint64  `json:"reputation"`
}

// DisputeRaisedEvent — открыт спор.
type DisputeRaisedEvent struct {
	DisputeID uint64  `json:"dispute_id"`
	JobID     uint64  `json:"job_id"`
	Initiator Address `json:"initiator"`
}

// DisputeResolvedEvent — спор разрешён арбитром.
type DisputeResolvedEvent struct {
	DisputeID  uint64  `json:"dispute_id"`
	Arbitrator Address `json:"arbitrator"`
}
