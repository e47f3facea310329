package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
)

func TestEscrowService_Create(t *testing.T) {
	e := newEnv(t)
	job, _ := e.jobInProgress(t)

	m, err := e.escrow.Create(job.ID, clientAddr, "Phase 1", "dead04", 10_000, time.Now().Add(24*time.Hour), 10_000)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusCreated, m.Status)
	assert.Equal(t, uint64(10_000), e.escrow.EscrowOf(m.ID))
	assert.Equal(t, uint64(10_000), e.escrow.TotalEscrow())
	assert.True(t, e.events.has(models.EventMilestoneCreated))
}

func TestEscrowService_Create_ValueMismatch(t *testing.T) {
	e := newEnv(t)
	job, _ := e.jobInProgress(t)
	deadline := time.Now().Add(24 * time.Hour)

	_, err := e.escrow.Create(job.ID, clientAddr, "Phase 1", "dead04", 10_000, deadline, 9_999)
	assert.ErrorIs(t, err, apperror.ErrValueMismatch)

	_, err = e.escrow.Create(job.ID, clientAddr, "Phase 1", "dead04", 0, deadline, 0)
	assert.ErrorIs(t, err, apperror.ErrZeroAmount)

	_, err = e.escrow.Create(job.ID, freelancerAddr, "Phase 1", "dead04", 10_000, deadline, 10_000)
	assert.ErrorIs(t, err, apperror.ErrNotJobClient)

	// Неудачные попытки не блокируют средств
	assert.Zero(t, e.escrow.TotalEscrow())
}

func TestEscrowService_Submit(t *testing.T) {
	e := newEnv(t)
	job, _ := e.jobInProgress(t)
	m, err := e.escrow.Create(job.ID, clientAddr, "Phase 1", "dead04", 10_000, time.Now().Add(24*time.Hour), 10_000)
	require.NoError(t, err)

	_, err = e.escrow.Submit(m.ID, clientAddr)
	assert.ErrorIs(t, err, apperror.ErrNotAssignedFreelancer)

	submitted, err := e.escrow.Submit(m.ID, freelancerAddr)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusSubmitted, submitted.Status)
	assert.False(t, submitted.CompletedAt.IsZero())

	// Повторная сдача невозможна
	_, err = e.escrow.Submit(m.ID, freelancerAddr)
	assert.ErrorIs(t, err, apperror.ErrNotSubmittable)
}

func TestEscrowService_Approve_FeeSplit(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)

	approved, err := e.escrow.Approve(m.ID, clientAddr, 8)
	require.NoError(t, err)
	assert.Equal(t, models.MilestoneStatusApproved, approved.Status)
	assert.True(t, approved.IsPaid)

	// Комиссия 250 bps: 250 владельцу, 9750 фрилансеру
	assert.Equal(t, uint64(9_750), e.sink.Balance(freelancerAddr))
	assert.Equal(t, uint64(250), e.sink.Balance(ownerAddr))

	// Эскроу полностью разблокирован
	assert.Zero(t, e.escrow.EscrowOf(m.ID))
	assert.Zero(t, e.escrow.TotalEscrow())

	// Статистика и репутация фрилансера обновлены: 500 + (8-5)*10
	user, err := e.identity.Get(freelancerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_750), user.TotalEarned)
	assert.Equal(t, uint64(1), user.JobsCompleted)
	assert.Equal(t, uint64(530), user.Reputation)

	assert.True(t, e.events.has(models.EventMilestoneApproved))
	assert.True(t, e.events.has(models.EventPaymentReleased))
	assert.True(t, e.events.has(models.EventReputationUpdated))
}

func TestEscrowService_Approve_DoublePay(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)

	_, err := e.escrow.Approve(m.ID, clientAddr, 8)
	require.NoError(t, err)

	_, err = e.escrow.Approve(m.ID, clientAddr, 8)
	assert.ErrorIs(t, err, apperror.ErrAlreadyPaid)

	// Повторная приёмка не создала второй выплаты
	assert.Equal(t, uint64(9_750), e.sink.Balance(freelancerAddr))
}

func TestEscrowService_Approve_Guards(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)

	_, err := e.escrow.Approve(m.ID, freelancerAddr, 8)
	assert.ErrorIs(t, err, apperror.ErrNotJobClient)

	_, err = e.escrow.Approve(m.ID, clientAddr, 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidRating)

	_, err = e.escrow.Approve(m.ID, clientAddr, 11)
	assert.ErrorIs(t, err, apperror.ErrInvalidRating)

	_, err = e.escrow.Approve(99, clientAddr, 8)
	assert.ErrorIs(t, err, apperror.ErrMilestoneNotFound)
}

func TestEscrowService_Approve_NotSubmitted(t *testing.T) {
	e := newEnv(t)
	job, _ := e.jobInProgress(t)
	m, err := e.escrow.Create(job.ID, clientAddr, "Phase 1", "dead04", 10_000, time.Now().Add(24*time.Hour), 10_000)
	require.NoError(t, err)

	_, err = e.escrow.Approve(m.ID, clientAddr, 8)
	assert.ErrorIs(t, err, apperror.ErrNotSubmitted)
}

func TestEscrowService_CompleteJob(t *testing.T) {
	e := newEnv(t)
	m := e.submittedMilestone(t, 10_000)

	// Пока милстоун не принят, заказ не завершается
	_, err := e.escrow.CompleteJob(m.JobID, clientAddr)
	assert.ErrorIs(t, err, apperror.ErrMilestonesPending)

	_, err = e.escrow.Approve(m.ID, clientAddr, 8)
	require.NoError(t, err)

	job, err := e.escrow.CompleteJob(m.JobID, clientAddr)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, job.Status)

	// Завершённый заказ нельзя завершить повторно
	_, err = e.escrow.CompleteJob(m.JobID, clientAddr)
	assert.ErrorIs(t, err, apperror.ErrJobNotInProgress)
}

func TestEscrowService_EscrowConservation(t *testing.T) {
	e := newEnv(t)
	job, _ := e.jobInProgress(t)
	deadline := time.Now().Add(24 * time.Hour)

	m1, err := e.escrow.Create(job.ID, clientAddr, "Phase 1", "dead04", 4_000, deadline, 4_000)
	require.NoError(t, err)
	m2, err := e.escrow.Create(job.ID, clientAddr, "Phase 2", "dead05", 6_000, deadline, 6_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), e.escrow.TotalEscrow())

	_, err = e.escrow.Submit(m1.ID, freelancerAddr)
	require.NoError(t, err)
	_, err = e.escrow.Approve(m1.ID, clientAddr, 7)
	require.NoError(t, err)

	// Второй милстоун остаётся заблокирован
	assert.Equal(t, uint64(6_000), e.escrow.TotalEscrow())
	assert.Equal(t, uint64(6_000), e.escrow.EscrowOf(m2.ID))
	assert.Zero(t, e.escrow.EscrowOf(m1.ID))

	// Сумма выплат равна разблокированному объёму
	total := e.sink.Balance(freelancerAddr) + e.sink.Balance(ownerAddr)
	assert.Equal(t, uint64(4_000), total)
}
