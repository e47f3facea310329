package service

import (
	"time"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// IdentityService ведёт реестр участников: регистрация, профиль,
// статистика, репутация. Учётные записи не удаляются — только деактивация.
type IdentityService struct {
	ledger *repository.Ledger
	events EventSink
}

func NewIdentityService(ledger *repository.Ledger, events EventSink) *IdentityService {
	return &IdentityService{ledger: ledger, events: events}
}

// Register создаёт участника. Повторная регистрация того же адреса
// отклоняется, состояние не меняется.
func (s *IdentityService) Register(addr models.Address, profileHash string) (*models.User, error) {
	if profileHash == "" {
		return nil, apperror.ErrEmptyProfile
	}

	var snapshot models.User
	err := s.ledger.Update(func(st *repository.State) error {
		if _, exists := st.Users[addr]; exists {
			return apperror.ErrAlreadyRegistered
		}
		user := &models.User{
			Address:      addr,
			ProfileHash:  profileHash,
			Reputation:   models.InitialReputation,
			IsActive:     true,
			RegisteredAt: time.Now(),
		}
		st.Users[addr] = user
		snapshot = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log().WithField("address", addr).Info("user registered")
	emitAll(s.events, []pendingEvent{
		{models.EventUserRegistered, models.UserRegisteredEvent{Address: addr, ProfileHash: profileHash}},
	})
	return &snapshot, nil
}

// UpdateProfile обновляет ссылку на профиль самого участника.
func (s *IdentityService) UpdateProfile(addr models.Address, newHash string) (*models.User, error) {
	if newHash == "" {
		return nil, apperror.ErrEmptyProfile
	}

	var snapshot models.User
	err := s.ledger.Update(func(st *repository.State) error {
		user, err := st.RequireActiveUser(addr)
		if err != nil {
			return err
		}
		user.ProfileHash = newHash
		snapshot = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Deactivate выключает учётную запись. Запись остаётся в реестре.
func (s *IdentityService) Deactivate(addr models.Address) error {
	return s.ledger.Update(func(st *repository.State) error {
		user, err := st.RequireActiveUser(addr)
		if err != nil {
			return err
		}
		user.IsActive = false
		return nil
	})
}

// IsRegistered — чистая проверка наличия адреса в реестре, не падает.
func (s *IdentityService) IsRegistered(addr models.Address) bool {
	var registered bool
	s.ledger.View(func(st *repository.State) {
		_, registered = st.Users[addr]
	})
	return registered
}

// Get возвращает участника по адресу.
func (s *IdentityService) Get(addr models.Address) (*models.User, error) {
	var (
		snapshot models.User
		found    bool
	)
	s.ledger.View(func(st *repository.State) {
		if user, ok := st.Users[addr]; ok {
			snapshot = *user
			found = true
		}
	})
	if !found {
		return nil, apperror.ErrUserNotFound
	}
	return &snapshot, nil
}

// Stats возвращает проекцию статистики участника.
func (s *IdentityService) Stats(addr models.Address) (*models.UserStats, error) {
	user, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	return &models.UserStats{
		JobsPosted:         user.JobsPosted,
		ProposalsSubmitted: user.ProposalsSubmitted,
		JobsCompleted:      user.JobsCompleted,
		TotalEarned:        user.TotalEarned,
		Reputation:         user.Reputation,
	}, nil
}

// applyRating пересчитывает репутацию по оценке приёмки.
// Точная формула контрактом не зафиксирована; принятое допущение:
// детерминированный сдвиг (rating-5)*10, зажатый в [0, MaxReputation].
// Оценка выше середины строго повышает репутацию, ниже — понижает,
// но не глубже нуля.
func applyRating(user *models.User, rating int) {
	rep := int64(user.Reputation) + int64(rating-models.NeutralRating)*10
	if rep < 0 {
		rep = 0
	}
	if rep > models.MaxReputation {
		rep = models.MaxReputation
	}
	user.Reputation = uint64(rep)
}
