package repository

import (
	"sync"

	"github.com/ignatzorin/freelance-escrow/internal/models"
)

// Ledger — авторитетное in-memory состояние ядра. Единственный писатель:
// каждая мутирующая операция выполняется целиком под write-блокировкой,
// поэтому чередование двух мутаций извне не наблюдаемо. Читатели получают
// согласованный снимок под read-блокировкой.
type Ledger struct {
	mu    sync.RWMutex
	state State
}

// State — все таблицы сущностей и эскроу-леджер.
// Доступен только внутри Update/View.
type State struct {
	Platform models.Platform

	Users map[models.Address]*models.User

	Jobs     map[uint64]*models.Job
	UserJobs map[models.Address][]uint64

	Proposals    map[uint64]*models.Proposal
	JobProposals map[uint64][]uint64 // в порядке подачи

	Milestones    map[uint64]*models.Milestone
	JobMilestones map[uint64][]uint64

	Disputes map[uint64]*models.Dispute

	// EscrowBalances[milestoneID] равен сумме милстоуна до выплаты/возврата.
	// EscrowTotal — сумма всех записей; ContractBalance — весь удерживаемый
	// ядром баланс (эскроу плюс свободные поступления).
	EscrowBalances  map[uint64]uint64
	EscrowTotal     uint64
	ContractBalance uint64

	// Счётчики идентификаторов, монотонные, с единицы.
	NextJobID       uint64
	NextProposalID  uint64
	NextMilestoneID uint64
	NextDisputeID   uint64
}

// NewLedger создаёт пустой леджер с заданным владельцем и комиссией.
func NewLedger(owner models.Address, feeBps uint64) *Ledger {
	return &Ledger{
		state: State{
			Platform: models.Platform{
				Owner:  owner,
				FeeBps: feeBps,
			},
			Users:           make(map[models.Address]*models.User),
			Jobs:            make(map[uint64]*models.Job),
			UserJobs:        make(map[models.Address][]uint64),
			Proposals:       make(map[uint64]*models.Proposal),
			JobProposals:    make(map[uint64][]uint64),
			Milestones:      make(map[uint64]*models.Milestone),
			JobMilestones:   make(map[uint64][]uint64),
			Disputes:        make(map[uint64]*models.Dispute),
			EscrowBalances:  make(map[uint64]uint64),
			NextJobID:       1,
			NextProposalID:  1,
			NextMilestoneID: 1,
			NextDisputeID:   1,
		},
	}
}

// Update выполняет мутирующую операцию атомарно. Ошибка из fn означает,
// что состояние не должно считаться изменённым: fn обязан выполнять все
// проверки до первой записи.
func (l *Ledger) Update(fn func(st *State) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(&l.state)
}

// View выполняет read-only запрос над согласованным снимком.
func (l *Ledger) View(fn func(st *State)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(&l.state)
}
