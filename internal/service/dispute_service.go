package service

import (
	"time"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// DisputeService — споры по сданным милстоунам и их разрешение арбитром
// (владельцем платформы). Решение бинарно: выплата фрилансеру по обычному
// пути приёмки либо полный возврат эскроу клиенту.
type DisputeService struct {
	ledger *repository.Ledger
	events EventSink
	sink   PaymentSink
}

func NewDisputeService(ledger *repository.Ledger, events EventSink, sink PaymentSink) *DisputeService {
	return &DisputeService{ledger: ledger, events: events, sink: sink}
}

// Raise открывает спор по сданному милстоуну. Доступно только клиенту
// заказа или назначенному фрилансеру; милстоун и заказ переходят в disputed.
func (s *DisputeService) Raise(milestoneID uint64, caller models.Address, reason string) (models.Dispute, error) {
	var dispute models.Dispute
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		if _, err := st.RequireActiveUser(caller); err != nil {
			return err
		}
		m, err := st.RequireMilestone(milestoneID)
		if err != nil {
			return err
		}
		job, err := st.RequireJob(m.JobID)
		if err != nil {
			return err
		}
		if caller != job.Client && caller != job.AssignedFreelancer {
			return apperror.ErrNotParticipant
		}
		if m.Status != models.MilestoneStatusSubmitted {
			return apperror.ErrNotDisputable
		}

		id := st.NextDisputeID
		st.NextDisputeID++
		d := &models.Dispute{
			ID:          id,
			MilestoneID: milestoneID,
			JobID:       m.JobID,
			Initiator:   caller,
			Reason:      reason,
			Status:      models.DisputeStatusOpen,
			CreatedAt:   time.Now(),
		}
		st.Disputes[id] = d
		m.Status = models.MilestoneStatusDisputed
		job.Status = models.JobStatusDisputed
		dispute = *d
		return nil
	})
	if err != nil {
		return models.Dispute{}, err
	}

	log().WithField("dispute_id", dispute.ID).Info("dispute raised")
	emitAll(s.events, []pendingEvent{
		{models.EventDisputeRaised, models.DisputeRaisedEvent{DisputeID: dispute.ID, JobID: dispute.JobID, Initiator: caller}},
	})
	return dispute, nil
}

// Resolve разрешает открытый спор. Только владелец платформы.
// В пользу фрилансера: милстоун принимается и оплачивается по обычному пути
// с нейтральной оценкой. В пользу клиента: эскроу полностью возвращается,
// милстоун сбрасывается в created (слот можно профинансировать заново).
// В обеих ветках заказ возвращается в работу.
func (s *DisputeService) Resolve(disputeID uint64, caller models.Address, favorFreelancer bool) (models.Dispute, error) {
	var (
		dispute   models.Dispute
		transfers []transfer
		events    []pendingEvent
	)
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		if caller != st.Platform.Owner {
			return apperror.ErrNotOwner
		}
		d, err := st.RequireDispute(disputeID)
		if err != nil {
			return err
		}
		if d.Status != models.DisputeStatusOpen {
			return apperror.ErrDisputeNotOpen
		}
		m, err := st.RequireMilestone(d.MilestoneID)
		if err != nil {
			return err
		}
		job, err := st.RequireJob(d.JobID)
		if err != nil {
			return err
		}
		if err := st.CheckEscrowIntegrity(); err != nil {
			return err
		}
		if err := st.RequireFundedEscrow(m.ID, m.Amount); err != nil {
			return err
		}

		if favorFreelancer {
			if m.IsPaid {
				return apperror.ErrAlreadyPaid
			}
			freelancer, ok := st.Users[job.AssignedFreelancer]
			if !ok {
				return apperror.ErrNotRegistered
			}

			fee := m.Amount * st.Platform.FeeBps / models.FeeDenominator
			payout := m.Amount - fee

			m.Status = models.MilestoneStatusApproved
			m.IsPaid = true
			st.ReleaseEscrow(m.ID, m.Amount)
			freelancer.TotalEarned += payout
			freelancer.JobsCompleted++
			applyRating(freelancer, models.NeutralRating)

			transfers = []transfer{
				{to: job.AssignedFreelancer, amount: payout},
				{to: st.Platform.Owner, amount: fee},
			}
			events = append(events,
				pendingEvent{models.EventMilestoneApproved, models.MilestoneApprovedEvent{MilestoneID: m.ID, JobID: m.JobID}},
				pendingEvent{models.EventPaymentReleased, models.PaymentReleasedEvent{MilestoneID: m.ID, To: job.AssignedFreelancer, Amount: payout}},
				pendingEvent{models.EventReputationUpdated, models.ReputationUpdatedEvent{Address: freelancer.Address, Reputation: freelancer.Reputation}},
			)
		} else {
			refund := m.Amount
			m.Status = models.MilestoneStatusCreated
			m.CompletedAt = time.Time{}
			st.ReleaseEscrow(m.ID, refund)

			transfers = []transfer{{to: job.Client, amount: refund}}
			events = append(events,
				pendingEvent{models.EventPaymentReleased, models.PaymentReleasedEvent{MilestoneID: m.ID, To: job.Client, Amount: refund}},
			)
		}

		job.Status = models.JobStatusInProgress
		d.Status = models.DisputeStatusResolved
		d.Arbitrator = caller
		d.ResolvedAt = time.Now()
		dispute = *d
		events = append(events,
			pendingEvent{models.EventDisputeResolved, models.DisputeResolvedEvent{DisputeID: d.ID, Arbitrator: caller}},
		)
		return nil
	})
	if err != nil {
		return models.Dispute{}, err
	}

	settle(s.sink, dispute.MilestoneID, transfers)
	emitAll(s.events, events)
	return dispute, nil
}

// Get возвращает спор по идентификатору.
func (s *DisputeService) Get(disputeID uint64) (models.Dispute, error) {
	var (
		dispute models.Dispute
		found   bool
	)
	s.ledger.View(func(st *repository.State) {
		if d, ok := st.Disputes[disputeID]; ok {
			dispute = *d
			found = true
		}
	})
	if !found {
		return models.Dispute{}, apperror.ErrDisputeNotFound
	}
	return dispute, nil
}
