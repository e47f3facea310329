package service

import (
	"strings"
	"time"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// JobService управляет жизненным циклом заказов.
type JobService struct {
	ledger *repository.Ledger
	events EventSink
}

func NewJobService(ledger *repository.Ledger, events EventSink) *JobService {
	return &JobService{ledger: ledger, events: events}
}

// Post публикует заказ от имени зарегистрированного клиента.
func (s *JobService) Post(client models.Address, title, descriptionHash string, skills []string, budget uint64, deadline time.Time) (models.Job, error) {
	var job models.Job
	err := s.ledger.Update(func(st *repository.State) error {
		if err := st.RequireNotPaused(); err != nil {
			return err
		}
		user, err := st.RequireActiveUser(client)
		if err != nil {
			return err
		}
		if strings.TrimSpace(title) == "" {
			return apperror.ErrEmptyTitle
		}
		if budget == 0 {
			return apperror.ErrZeroBudget
		}
		if !deadline.After(time.Now()) {
			return apperror.ErrDeadlineInPast
		}

		id := st.NextJobID
		st.NextJobID++
		j := &models.Job{
			ID:              id,
			Client:          client,
			Title:           title,
			DescriptionHash: descriptionHash,
			SkillsRequired:  append([]string(nil), skills...),
			Budget:          budget,
			Deadline:        deadline,
			Status:          models.JobStatusOpen,
			CreatedAt:       time.Now(),
		}
		st.Jobs[id] = j
		st.UserJobs[client] = append(st.UserJobs[client], id)
		user.JobsPosted++
		job = cloneJob(j)
		return nil
	})
	if err != nil {
		return models.Job{}, err
	}

	log().WithField("job_id", job.ID).Info("job posted")
	emitAll(s.events, []pendingEvent{
		{models.EventJobPosted, models.JobPostedEvent{JobID: job.ID, Client: client, Budget: job.Budget}},
	})
	return job, nil
}

// Cancel отменяет заказ. Доступно только клиенту и только пока заказ открыт;
// отмена терминальна.
func (s *JobService) Cancel(jobID uint64, caller models.Address) (models.Job, error) {
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
		if j.Status != models.JobStatusOpen {
			return apperror.ErrJobNotCancellable
		}
		j.Status = models.JobStatusCancelled
		job = cloneJob(j)
		return nil
	})
	return job, err
}

// Get возвращает заказ по идентификатору.
func (s *JobService) Get(jobID uint64) (models.Job, error) {
	var (
		job   models.Job
		found bool
	)
	s.ledger.View(func(st *repository.State) {
		if j, ok := st.Jobs[jobID]; ok {
			job = cloneJob(j)
			found = true
		}
	})
	if !found {
		return models.Job{}, apperror.ErrJobNotFound
	}
	return job, nil
}

// ListActive возвращает идентификаторы открытых и выполняемых заказов
// по возрастанию, не более limit начиная с offset. Никогда не падает:
// на хвосте возвращает меньше limit.
func (s *JobService) ListActive(offset, limit int) []uint64 {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var ids []uint64
	s.ledger.View(func(st *repository.State) {
		var active []uint64
		for id := uint64(1); id < st.NextJobID; id++ {
			if j, ok := st.Jobs[id]; ok && j.IsActive() {
				active = append(active, id)
			}
		}
		if offset >= len(active) {
			return
		}
		end := offset + limit
		if end > len(active) {
			end = len(active)
		}
		ids = cloneIDs(active[offset:end])
	})
	return ids
}

// GetMany — пакетная проекция. Отсутствующие идентификаторы дают
// нулевую заглушку, вызов целиком не падает.
func (s *JobService) GetMany(ids []uint64) []models.Job {
	jobs := make([]models.Job, len(ids))
	s.ledger.View(func(st *repository.State) {
		for i, id := range ids {
			if j, ok := st.Jobs[id]; ok {
				jobs[i] = cloneJob(j)
			}
		}
	})
	return jobs
}

// ForUser возвращает идентификаторы заказов, где адрес является клиентом.
func (s *JobService) ForUser(addr models.Address) []uint64 {
	var ids []uint64
	s.ledger.View(func(st *repository.State) {
		ids = cloneIDs(st.UserJobs[addr])
	})
	return ids
}
