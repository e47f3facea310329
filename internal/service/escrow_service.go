package service

import (
	"time"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// EscrowService — кастодиальное ядро: помилстоунная блокировка средств,
// сдача и приёмка работ, выплата за вычетом комиссии платформы.
// Выплаты двухфазные: сначала фиксируется состояние (статус, обнуление
// эскроу, статистика), и только затем выполняются переводы через PaymentSink.
type EscrowService struct {
	ledger *repository.Ledger
	events EventSink
	sink   PaymentSink
}

func NewEscrowService(ledger *repository.Ledger, events EventSink, sink PaymentSink) *EscrowService {
	return &EscrowService{ledger: ledger, events: events, sink: sink}
}

// Create создаёт милстоун и блокирует его сумму на эскроу.
// Переданная сумма должна в точности равняться сумме милстоуна.
func (s *EscrowService) Create(jobID uint64, caller models.Address, title, descriptionHash string, amount uint64, deadline time.Time, transferredValue uint64) (models.Milestone, error) {
	var milestone models.Milestone
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		if _, err := st.RequireActiveUser(caller); err != nil {
			return err
		}
		job, err := st.RequireJob(jobID)
		if err != nil {
			return err
		}
		if job.Client != caller {
			return apperror.ErrNotJobClient
		}
		if amount == 0 {
			return apperror.ErrZeroAmount
		}
		if transferredValue != amount {
			return apperror.ErrValueMismatch
		}

		id := st.NextMilestoneID
		st.NextMilestoneID++
		m := &models.Milestone{
			ID:              id,
			JobID:           jobID,
			Title:           title,
			DescriptionHash: descriptionHash,
			Amount:          amount,
			Deadline:        deadline,
			Status:          models.MilestoneStatusCreated,
			CreatedAt:       time.Now(),
		}
		st.Milestones[id] = m
		st.JobMilestones[jobID] = append(st.JobMilestones[jobID], id)
		st.HoldEscrow(id, amount)
		milestone = *m
		return nil
	})
	if err != nil {
		return models.Milestone{}, err
	}

	log().WithField("milestone_id", milestone.ID).Info("milestone created, funds escrowed")
	emitAll(s.events, []pendingEvent{
		{models.EventMilestoneCreated, models.MilestoneCreatedEvent{MilestoneID: milestone.ID, JobID: jobID, Amount: milestone.Amount}},
	})
	return milestone, nil
}

// Submit сдаёт милстоун на приёмку. Доступно только назначенному фрилансеру.
func (s *EscrowService) Submit(milestoneID uint64, caller models.Address) (models.Milestone, error) {
	var milestone models.Milestone
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
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
		if job.AssignedFreelancer != caller {
			return apperror.ErrNotAssignedFreelancer
		}
		if !m.CanSubmit() {
			return apperror.ErrNotSubmittable
		}
		m.Status = models.MilestoneStatusSubmitted
		m.CompletedAt = time.Now()
		milestone = *m
		return nil
	})
	if err != nil {
		return models.Milestone{}, err
	}

	emitAll(s.events, []pendingEvent{
		{models.EventMilestoneSubmitted, models.MilestoneSubmittedEvent{MilestoneID: milestone.ID, JobID: milestone.JobID}},
	})
	return milestone, nil
}

// Approve принимает сданный милстоун: состояние переводится в approved,
// эскроу обнуляется, статистика и репутация фрилансера обновляются, и лишь
// после фиксации выполняются переводы — фрилансеру за вычетом комиссии,
// затем комиссия владельцу платформы.
func (s *EscrowService) Approve(milestoneID uint64, caller models.Address, rating int) (models.Milestone, error) {
	var (
		milestone models.Milestone
		transfers []transfer
		events    []pendingEvent
	)
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
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
		if job.Client != caller {
			return apperror.ErrNotJobClient
		}
		if m.IsPaid {
			return apperror.ErrAlreadyPaid
		}
		if m.Status != models.MilestoneStatusSubmitted {
			return apperror.ErrNotSubmitted
		}
		if rating < models.MinRating || rating > models.MaxRating {
			return apperror.ErrInvalidRating
		}

		freelancer, ok := st.Users[job.AssignedFreelancer]
		if !ok {
			return apperror.ErrNotRegistered
		}
		if err := st.CheckEscrowIntegrity(); err != nil {
			return err
		}
		if err := st.RequireFundedEscrow(m.ID, m.Amount); err != nil {
			return err
		}

		fee := m.Amount * st.Platform.FeeBps / models.FeeDenominator
		payout := m.Amount - fee

		m.Status = models.MilestoneStatusApproved
		m.IsPaid = true
		st.ReleaseEscrow(m.ID, m.Amount)
		freelancer.TotalEarned += payout
		freelancer.JobsCompleted++
		applyRating(freelancer, rating)

		transfers = []transfer{
			{to: job.AssignedFreelancer, amount: payout},
			{to: st.Platform.Owner, amount: fee},
		}
		events = []pendingEvent{
			{models.EventMilestoneApproved, models.MilestoneApprovedEvent{MilestoneID: m.ID, JobID: m.JobID}},
			{models.EventPaymentReleased, models.PaymentReleasedEvent{MilestoneID: m.ID, To: job.AssignedFreelancer, Amount: payout}},
			{models.EventReputationUpdated, models.ReputationUpdatedEvent{Address: freelancer.Address, Reputation: freelancer.Reputation}},
		}
		milestone = *m
		return nil
	})
	if err != nil {
		return models.Milestone{}, err
	}

	settle(s.sink, milestoneID, transfers)
	emitAll(s.events, events)
	return milestone, nil
}

// CompleteJob завершает заказ, когда все его милстоуны приняты.
func (s *EscrowService) CompleteJob(jobID uint64, caller models.Address) (models.Job, error) {
	var job models.Job
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		j, err := st.RequireJob(jobID)
		if err != nil {
			return err
		}
		if j.Client != caller {
			return apperror.ErrNotJobClient
		}
		if j.Status != models.JobStatusInProgress {
			return apperror.ErrJobNotInProgress
		}
		for _, id := range st.JobMilestones[jobID] {
			if st.Milestones[id].Status != models.MilestoneStatusApproved {
				return apperror.ErrMilestonesPending
			}
		}
		j.Status = models.JobStatusCompleted
		job = cloneJob(j)
		return nil
	})
	if err != nil {
		return models.Job{}, err
	}

	log().WithField("job_id", jobID).Info("job completed")
	return job, nil
}

// Get возвращает милстоун по идентификатору.
func (s *EscrowService) Get(milestoneID uint64) (models.Milestone, error) {
	var (
		milestone models.Milestone
		found     bool
	)
	s.ledger.View(func(st *repository.State) {
		if m, ok := st.Milestones[milestoneID]; ok {
			milestone = *m
			found = true
		}
	})
	if !found {
		return models.Milestone{}, apperror.ErrMilestoneNotFound
	}
	return milestone, nil
}

// WithEscrow возвращает милстоун вместе с текущим остатком его эскроу.
func (s *EscrowService) WithEscrow(milestoneID uint64) (models.Milestone, uint64, error) {
	var (
		milestone models.Milestone
		balance   uint64
		found     bool
	)
	s.ledger.View(func(st *repository.State) {
		if m, ok := st.Milestones[milestoneID]; ok {
			milestone = *m
			balance = st.EscrowBalances[milestoneID]
			found = true
		}
	})
	if !found {
		return models.Milestone{}, 0, apperror.ErrMilestoneNotFound
	}
	return milestone, balance, nil
}

// EscrowOf возвращает остаток эскроу милстоуна (ноль для неизвестных id).
func (s *EscrowService) EscrowOf(milestoneID uint64) uint64 {
	var balance uint64
	s.ledger.View(func(st *repository.State) {
		balance = st.EscrowBalances[milestoneID]
	})
	return balance
}

// TotalEscrow возвращает сумму всех эскроу-остатков. По инварианту ядра
// она равна заблокированной части удерживаемого баланса в любой момент.
func (s *EscrowService) TotalEscrow() uint64 {
	var total uint64
	s.ledger.View(func(st *repository.State) {
		total = st.EscrowTotal
	})
	return total
}

// ForJob возвращает идентификаторы милстоунов заказа.
func (s *EscrowService) ForJob(jobID uint64) []uint64 {
	var ids []uint64
	s.ledger.View(func(st *repository.State) {
		ids = cloneIDs(st.JobMilestones[jobID])
	})
	return ids
}
