package service

import (
	"time"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// ProposalService управляет откликами фрилансеров на заказы.
type ProposalService struct {
	ledger *repository.Ledger
	events EventSink
}

func NewProposalService(ledger *repository.Ledger, events EventSink) *ProposalService {
	return &ProposalService{ledger: ledger, events: events}
}

// Submit подаёт отклик на открытый заказ. Клиент не может откликнуться
// на собственный заказ.
func (s *ProposalService) Submit(freelancer models.Address, jobID uint64, proposalHash string, bidAmount, durationDays uint64) (models.Proposal, error) {
	var proposal models.Proposal
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		user, err := st.RequireActiveUser(freelancer)
		if err != nil {
			return err
		}
		job, err := st.RequireJob(jobID)
		if err != nil {
			return err
		}
		if job.Client == freelancer {
			return apperror.ErrOwnJobProposal
		}
		if job.Status != models.JobStatusOpen {
			return apperror.ErrJobNotOpen
		}

		id := st.NextProposalID
		st.NextProposalID++
		p := &models.Proposal{
			ID:             id,
			JobID:          jobID,
			Freelancer:     freelancer,
			ProposalHash:   proposalHash,
			ProposedBudget: bidAmount,
			DurationDays:   durationDays,
			Status:         models.ProposalStatusPending,
			CreatedAt:      time.Now(),
		}
		st.Proposals[id] = p
		st.JobProposals[jobID] = append(st.JobProposals[jobID], id)
		user.ProposalsSubmitted++
		proposal = *p
		return nil
	})
	if err != nil {
		return models.Proposal{}, err
	}

	emitAll(s.events, []pendingEvent{
		{models.EventProposalSubmitted, models.ProposalSubmittedEvent{ProposalID: proposal.ID, JobID: jobID, Freelancer: freelancer}},
	})
	return proposal, nil
}

// Accept принимает отклик. Заказ переходит в работу, бюджет перезаписывается
// ставкой отклика, остальные pending-отклики на заказ пакетно отклоняются.
func (s *ProposalService) Accept(proposalID uint64, caller models.Address) (models.Proposal, error) {
	var proposal models.Proposal
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		p, err := st.RequireProposal(proposalID)
		if err != nil {
			return err
		}
		job, err := st.RequireJob(p.JobID)
		if err != nil {
			return err
		}
		if job.Client != caller {
			return apperror.ErrNotJobClient
		}
		if p.Status != models.ProposalStatusPending {
			return apperror.ErrProposalNotPending
		}
		if job.Status != models.JobStatusOpen {
			return apperror.ErrJobNotOpen
		}

		p.Status = models.ProposalStatusAccepted
		job.Status = models.JobStatusInProgress
		job.AssignedFreelancer = p.Freelancer
		job.Budget = p.ProposedBudget

		for _, siblingID := range st.JobProposals[p.JobID] {
			if siblingID == proposalID {
				continue
			}
			if sibling := st.Proposals[siblingID]; sibling.Status == models.ProposalStatusPending {
				sibling.Status = models.ProposalStatusRejected
			}
		}
		proposal = *p
		return nil
	})
	if err != nil {
		return models.Proposal{}, err
	}

	log().WithField("proposal_id", proposal.ID).Info("proposal accepted")
	emitAll(s.events, []pendingEvent{
		{models.EventProposalAccepted, models.ProposalAcceptedEvent{ProposalID: proposal.ID, JobID: proposal.JobID, Freelancer: proposal.Freelancer}},
	})
	return proposal, nil
}

// Withdraw отзывает собственный pending-отклик.
func (s *ProposalService) Withdraw(proposalID uint64, caller models.Address) (models.Proposal, error) {
	var proposal models.Proposal
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		p, err := st.RequireProposal(proposalID)
		if err != nil {
			return err
		}
		if p.Freelancer != caller {
			return apperror.ErrNotProposalOwner
		}
		if p.Status != models.ProposalStatusPending {
			return apperror.ErrProposalNotPending
		}
		p.Status = models.ProposalStatusWithdrawn
		proposal = *p
		return nil
	})
	return proposal, err
}

// Get возвращает отклик по идентификатору.
func (s *ProposalService) Get(proposalID uint64) (models.Proposal, error) {
	var (
		proposal models.Proposal
		found    bool
	)
	s.ledger.View(func(st *repository.State) {
		if p, ok := st.Proposals[proposalID]; ok {
			proposal = *p
			found = true
		}
	})
	if !found {
		return models.Proposal{}, apperror.ErrProposalNotFound
	}
	return proposal, nil
}

// ForJob возвращает идентификаторы откликов заказа в порядке подачи.
func (s *ProposalService) ForJob(jobID uint64) []uint64 {
	var ids []uint64
	s.ledger.View(func(st *repository.State) {
		ids = cloneIDs(st.JobProposals[jobID])
	})
	return ids
}
