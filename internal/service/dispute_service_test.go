package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
)

func TestDisputeService_Raise(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)

	d, err := e.disputes.Raise(m.ID, freelancerAddr, "work rejected unfairly")
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusOpen, d.Status)
	assert.Equal(t, freelancerAddr, d.Initiator)
	assert.True(t, e.events.has(models.EventDisputeRaised))

	// Милстоун и заказ переходят в disputed
	frozen, err := e.escrow.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusDisputed, frozen.Status)
	job, err := e.jobs.Get(m.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDisputed, job.Status)

	// Спорный милстоун нельзя принять
	_, err = e.escrow.Approve(m.ID, clientAddr, 8)
	assert.ErrorIs(t, err, apperror.ErrNotSubmitted)
}

func TestDisputeService_Raise_OnlyParticipants(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)
	e.register(t, strangerAddr)

	_, err := e.disputes.Raise(m.ID, strangerAddr, "not my business")
	assert.ErrorIs(t, err, apperror.ErrNotParticipant)
}

func TestDisputeService_Raise_OnlySubmitted(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)
	_, err := e.escrow.Approve(m.ID, clientAddr, 8)
	require.NoError(t, err)

	_, err = e.disputes.Raise(m.ID, clientAddr, "too late")
	assert.ErrorIs(t, err, apperror.ErrNotDisputable)
}

func TestDisputeService_Resolve_FavorFreelancer(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)
	d, err := e.disputes.Raise(m.ID, clientAddr, "quality concerns")
	require.NoError(t, err)

	resolved, err := e.disputes.Resolve(d.ID, ownerAddr, true)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusResolved, resolved.Status)
	assert.Equal(t, ownerAddr, resolved.Arbitrator)

	// Выплата идёт обычным путём приёмки с нейтральной оценкой
	assert.Equal(t, uint64(9_750), e.sink.Balance(freelancerAddr))
	assert.Equal(t, uint64(250), e.sink.Balance(ownerAddr))
	user, err := e.identity.Get(freelancerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(models.InitialReputation), user.Reputation)

	// Заказ возвращается в работу
	job, err := e.jobs.Get(m.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, job.Status)
	assert.True(t, e.events.has(models.EventDisputeResolved))
}

func TestDisputeService_Resolve_FavorClient(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)
	d, err := e.disputes.Raise(m.ID, clientAddr, "quality concerns")
	require.NoError(t, err)

	_, err = e.disputes.Resolve(d.ID, ownerAddr, false)
	require.NoError(t, err)

	// Полный возврат эскроу клиенту, без комиссии
	assert.Equal(t, uint64(10_000), e.sink.Balance(clientAddr))
	assert.Zero(t, e.sink.Balance(freelancerAddr))
	assert.Zero(t, e.escrow.TotalEscrow())

	// Милстоун сброшен в created, слот можно профинансировать заново
	reset, err := e.escrow.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusCreated, reset.Status)
	assert.True(t, reset.CompletedAt.IsZero())
	assert.False(t, reset.IsPaid)
}

func TestDisputeService_Resolve_FavorClient_NoPayoutFromEmptySlot(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)
	d, err := e.disputes.Raise(m.ID, clientAddr, "quality concerns")
	require.NoError(t, err)

	_, err = e.disputes.Resolve(d.ID, ownerAddr, false)
	require.NoError(t, err)

	// Слот обнулён возвратом: повторная сдача проходит, но выплата из
	// непрофинансированного эскроу обязана упереться в сверку леджера
	_, err = e.escrow.Submit(m.ID, freelancerAddr)
	require.NoError(t, err)

	_, err = e.escrow.Approve(m.ID, clientAddr, 8)
	assert.ErrorIs(t, err, apperror.ErrEscrowMismatch)

	// Ни выплат, ни комиссии, ни сдвига удерживаемого баланса
	assert.Zero(t, e.sink.Balance(freelancerAddr))
	assert.Zero(t, e.sink.Balance(ownerAddr))
	assert.Zero(t, e.escrow.TotalEscrow())
	assert.Zero(t, e.admin.ContractBalance())

	unpaid, err := e.escrow.Get(m.ID)
	require.NoError(t, err)
	assert.False(t, unpaid.IsPaid)

	// Арбитраж по тому же пустому слоту тоже закрыт
	d, err = e.disputes.Raise(m.ID, clientAddr, "still unresolved")
	require.NoError(t, err)
	_, err = e.disputes.Resolve(d.ID, ownerAddr, true)
	assert.ErrorIs(t, err, apperror.ErrEscrowMismatch)
}

func TestDisputeService_Resolve_OnlyOwner(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)
	d, err := e.disputes.Raise(m.ID, clientAddr, "quality concerns")
	require.NoError(t, err)

	_, err = e.disputes.Resolve(d.ID, clientAddr, true)
	assert.ErrorIs(t, err, apperror.ErrNotOwner)
}

func TestDisputeService_Resolve_Twice(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)
	d, err := e.disputes.Raise(m.ID, clientAddr, "quality concerns")
	require.NoError(t, err)

	_, err = e.disputes.Resolve(d.ID, ownerAddr, true)
	require.NoError(t, err)

	_, err = e.disputes.Resolve(d.ID, ownerAddr, true)
	assert.ErrorIs(t, err, apperror.ErrDisputeNotOpen)
}
