package models

import "time"

// Границы репутации. Новый участник стартует с 500; оценка милстоуна
// сдвигает репутацию в пределах [0, 1000].
const (
	InitialReputation = 500
	MaxReputation     = 1000
)

// Диапазон оценки при приёмке милстоуна.
const (
	MinRating     = 1
	MaxRating     = 10
	NeutralRating = 5
)

// User описывает участника платформы.
type User struct {
	Address            Address   `json:"address"`
	ProfileHash        string    `json:"profile_hash"`
	Reputation         uint64    `json:"reputation"`
	IsActive           bool      `json:"is_active"`
	JobsPosted         uint64    `json:"jobs_posted"`
	ProposalsSubmitted uint64    `json:"proposals_submitted"`
	JobsCompleted      uint64    `json:"jobs_completed"`
	TotalEarned        uint64    `json:"total_earned"`
	RegisteredAt       time.Time `json:"registered_at"`
}

// UserStats — read-only проекция статистики участника.
type UserStats struct {
	JobsPosted         uint64 `json:"jobs_posted"`
	ProposalsSubmitted uint64 `json:"proposals_submitted"`
	JobsCompleted      uint64 `json:"jobs_completed"`
	TotalEarned        uint64 `json:"total_earned"`
	Reputation         uint64 `json:"reputation"`
}
