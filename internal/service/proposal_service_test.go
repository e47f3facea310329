package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
)

func TestProposalService_Submit(t *testing.T) {
	e := newEnv(t)
	job := e.openJob(t)

	p, err := e.proposals.Submit(freelancerAddr, job.ID, "feed03", 80_000, 14)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, p.Status)
	assert.True(t, e.events.has(models.EventProposalSubmitted))

	stats, err := e.identity.Stats(freelancerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.ProposalsSubmitted)
}

func TestProposalService_Submit_OwnJob(t *testing.T) {
	e := newEnv(t)
	job := e.openJob(t)

	_, err := e.proposals.Submit(clientAddr, job.ID, "feed03", 80_000, 14)
	assert.ErrorIs(t, err, apperror.ErrOwnJobProposal)
}

func TestProposalService_Submit_JobNotOpen(t *testing.T) {
	e := newEnv(t)
	job, _ := e.jobInProgress(t)
	e.register(t, strangerAddr)

	_, err := e.proposals.Submit(strangerAddr, job.ID, "feed03", 80_000, 14)
	assert.ErrorIs(t, err, apperror.ErrJobNotOpen)
}

func TestProposalService_Accept(t *testing.T) {
	e := newEnv(t)
	job := e.openJob(t)
	e.register(t, strangerAddr)

	first, err := e.proposals.Submit(freelancerAddr, job.ID, "feed03", 80_000, 14)
	require.NoError(t, err)
	second, err := e.proposals.Submit(strangerAddr, job.ID, "feed04", 70_000, 10)
	require.NoError(t, err)

	accepted, err := e.proposals.Accept(first.ID, clientAddr)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAccepted, accepted.Status)

	// Заказ переходит в работу, бюджет перезаписывается ставкой
	fresh, err := e.jobs.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, fresh.Status)
	assert.Equal(t, freelancerAddr, fresh.AssignedFreelancer)
	assert.Equal(t, uint64(80_000), fresh.Budget)

	// Конкурирующий pending-отклик пакетно отклонён
	sibling, err := e.proposals.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, sibling.Status)
}

func TestProposalService_Accept_OnlyClient(t *testing.T) {
	e := newEnv(t)
	job := e.openJob(t)
	p, err := e.proposals.Submit(freelancerAddr, job.ID, "feed03", 80_000, 14)
	require.NoError(t, err)

	_, err = e.proposals.Accept(p.ID, freelancerAddr)
	assert.ErrorIs(t, err, apperror.ErrNotJobClient)
}

func TestProposalService_Accept_NotPending(t *testing.T) {
	e := newEnv(t)
	_, accepted := e.jobInProgress(t)

	_, err := e.proposals.Accept(accepted.ID, clientAddr)
	assert.ErrorIs(t, err, apperror.ErrProposalNotPending)
}

func TestProposalService_Withdraw(t *testing.T) {
	e := newEnv(t)
	job := e.openJob(t)
	p, err := e.proposals.Submit(freelancerAddr, job.ID, "feed03", 80_000, 14)
	require.NoError(t, err)

	_, err = e.proposals.Withdraw(p.ID, clientAddr)
	assert.ErrorIs(t, err, apperror.ErrNotProposalOwner)

	withdrawn, err := e.proposals.Withdraw(p.ID, freelancerAddr)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusWithdrawn, withdrawn.Status)

	// Отозванный отклик нельзя принять
	_, err = e.proposals.Accept(p.ID, clientAddr)
	assert.ErrorIs(t, err, apperror.ErrProposalNotPending)
}

func TestProposalService_ForJob_Order(t *testing.T) {
	e := newEnv(t)
	job := e.openJob(t)
	e.register(t, strangerAddr)

	p1, err := e.proposals.Submit(freelancerAddr, job.ID, "feed03", 80_000, 14)
	require.NoError(t, err)
	p2, err := e.proposals.Submit(strangerAddr, job.ID, "feed04", 70_000, 10)
	require.NoError(t, err)

	assert.Equal(t, []uint64{p1.ID, p2.ID}, e.proposals.ForJob(job.ID))
}
