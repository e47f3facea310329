package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

const tokenTTL = 15 * time.Minute

const (
	ownerAddr      = models.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	clientAddr     = models.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	freelancerAddr = models.Address("0xcccccccccccccccccccccccccccccccccccccccc")
	strangerAddr   = models.Address("0xdddddddddddddddddddddddddddddddddddddddd")
)

// eventRecorder собирает имена событий, отданных сервисами.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) Emit(event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *eventRecorder) has(event string) bool {
	for _, e := range r.names() {
		if e == event {
			return true
		}
	}
	return false
}

// env — полный набор сервисов над одним леджером.
type env struct {
	ledger    *repository.Ledger
	events    *eventRecorder
	sink      *WalletSink
	identity  *IdentityService
	jobs      *JobService
	proposals *ProposalService
	escrow    *EscrowService
	disputes  *DisputeService
	admin     *AdminService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ledger := repository.NewLedger(ownerAddr, models.DefaultPlatformFeeBps)
	events := &eventRecorder{}
	sink := NewWalletSink()
	return &env{
		ledger:    ledger,
		events:    events,
		sink:      sink,
		identity:  NewIdentityService(ledger, events),
		jobs:      NewJobService(ledger, events),
		proposals: NewProposalService(ledger, events),
		escrow:    NewEscrowService(ledger, events, sink),
		disputes:  NewDisputeService(ledger, events, sink),
		admin:     NewAdminService(ledger, sink),
	}
}

func (e *env) register(t *testing.T, addr models.Address) {
	t.Helper()
	_, err := e.identity.Register(addr, "cafe01")
	require.NoError(t, err)
}

// openJob регистрирует клиента и фрилансера и публикует открытый заказ.
func (e *env) openJob(t *testing.T) models.Job {
	t.Helper()
	e.register(t, clientAddr)
	e.register(t, freelancerAddr)
	job, err := e.jobs.Post(clientAddr, "Build backend", "beef02", []string{"go"}, 100_000, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	return job
}

// jobInProgress доводит заказ до принятого отклика.
func (e *env) jobInProgress(t *testing.T) (models.Job, models.Proposal) {
	t.Helper()
	job := e.openJob(t)
	p, err := e.proposals.Submit(freelancerAddr, job.ID, "feed03", 80_000, 14)
	require.NoError(t, err)
	accepted, err := e.proposals.Accept(p.ID, clientAddr)
	require.NoError(t, err)
	job, err = e.jobs.Get(job.ID)
	require.NoError(t, err)
	return job, accepted
}

// submittedMilestone создаёт профинансированный и сданный милстоун.
func (e *env) submittedMilestone(t *testing.T, amount uint64) models.Milestone {
	t.Helper()
	job, _ := e.jobInProgress(t)
	m, err := e.escrow.Create(job.ID, clientAddr, "Phase 1", "dead04", amount, time.Now().Add(7*24*time.Hour), amount)
	require.NoError(t, err)
	m, err = e.escrow.Submit(m.ID, freelancerAddr)
	require.NoError(t, err)
	return m
}
