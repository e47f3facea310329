package repository

import (
	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
)

// Общие проверки, которые сервисы выполняют в начале мутирующих операций.

// RequireNotPaused отклоняет мутацию при включённой паузе.
func (st *State) RequireNotPaused() error {
	if st.Platform.Paused {
		return apperror.ErrPaused
	}
	return nil
}

// RequireActiveUser возвращает зарегистрированного активного участника.
func (st *State) RequireActiveUser(addr models.Address) (*models.User, error) {
	user, ok := st.Users[addr]
	if !ok || !user.IsActive {
		return nil, apperror.ErrNotRegistered
	}
	return user, nil
}

// RequireJob возвращает заказ по идентификатору.
func (st *State) RequireJob(id uint64) (*models.Job, error) {
	job, ok := st.Jobs[id]
	if !ok {
		return nil, apperror.ErrJobNotFound
	}
	return job, nil
}

// RequireProposal возвращает отклик по идентификатору.
func (st *State) RequireProposal(id uint64) (*models.Proposal, error) {
	p, ok := st.Proposals[id]
	if !ok {
		return nil, apperror.ErrProposalNotFound
	}
	return p, nil
}

// RequireMilestone возвращает милстоун по идентификатору.
func (st *State) RequireMilestone(id uint64) (*models.Milestone, error) {
	m, ok := st.Milestones[id]
	if !ok {
		return nil, apperror.ErrMilestoneNotFound
	}
	return m, nil
}

// RequireDispute возвращает спор по идентификатору.
func (st *State) RequireDispute(id uint64) (*models.Dispute, error) {
	d, ok := st.Disputes[id]
	if !ok {
		return nil, apperror.ErrDisputeNotFound
	}
	return d, nil
}

// CheckEscrowIntegrity пересчитывает эскроу-леджер перед любым списанием.
// Инвариант: сумма записей равна EscrowTotal и не превышает удерживаемый
// баланс. Несовпадение фатально: операция прерывается до переводов.
func (st *State) CheckEscrowIntegrity() error {
	var sum uint64
	for _, amount := range st.EscrowBalances {
		sum += amount
	}
	if sum != st.EscrowTotal || st.EscrowTotal > st.ContractBalance {
		return apperror.ErrEscrowMismatch
	}
	return nil
}

// RequireFundedEscrow проверяет, что в эскроу милстоуна лежит ровно
// ожидаемая сумма. Слот, обнулённый возвратом, перестаёт быть выплачиваемым,
// пока не будет профинансирован заново.
func (st *State) RequireFundedEscrow(milestoneID, amount uint64) error {
	if st.EscrowBalances[milestoneID] != amount {
		return apperror.ErrEscrowMismatch
	}
	return nil
}

// HoldEscrow блокирует сумму милстоуна в эскроу-леджере.
func (st *State) HoldEscrow(milestoneID, amount uint64) {
	st.EscrowBalances[milestoneID] = amount
	st.EscrowTotal += amount
	st.ContractBalance += amount
}

// ReleaseEscrow обнуляет запись милстоуна и уменьшает удерживаемый баланс.
// Вызывается только после успешного CheckEscrowIntegrity.
func (st *State) ReleaseEscrow(milestoneID, amount uint64) {
	st.EscrowBalances[milestoneID] = 0
	st.EscrowTotal -= amount
	st.ContractBalance -= amount
}
