package models

// Комиссия платформы в базисных пунктах (1 б.п. = 0.01%).
const (
	DefaultPlatformFeeBps = 250
	// MaxPlatformFeeBps — документированный потолок комиссии (10%).
	MaxPlatformFeeBps = 1000
	FeeDenominator    = 10000
)

// Platform — административное состояние ядра: владелец, комиссия, пауза.
// Передаётся компонентам через леджер, а не через глобальные переменные.
type Platform struct {
	Owner  Address `json:"owner"`
	FeeBps uint64  `json:"fee_bps"`
	Paused bool    `json:"paused"`
}

// PlatformStats — агрегированная статистика платформы.
type PlatformStats struct {
	TotalJobs        uint64 `json:"total_jobs"`
	TotalProposals   uint64 `json:"total_proposals"`
	TotalMilestones  uint64 `json:"total_milestones"`
	TotalDisputes    uint64 `json:"total_disputes"`
	ActiveJobs       uint64 `json:"active_jobs"`
	TotalValueLocked uint64 `json:"total_value_locked"`
}

// Counters — текущие значения счётчиков сущностей.
type Counters struct {
	Jobs       uint64 `json:"jobs"`
	Proposals  uint64 `json:"proposals"`
	Milestones uint64 `json:"milestones"`
	Disputes   uint64 `json:"disputes"`
}
