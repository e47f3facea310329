package service

import (
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// AdminService — административный контур: комиссия, пауза, аварийный
// вывод свободного баланса и платформенная статистика. Все мутации
// доступны только владельцу.
type AdminService struct {
	ledger *repository.Ledger
	sink   PaymentSink
}

func NewAdminService(ledger *repository.Ledger, sink PaymentSink) *AdminService {
	return &AdminService{ledger: ledger, sink: sink}
}

// UpdateFee меняет комиссию платформы. Потолок задокументирован
// в models.MaxPlatformFeeBps; при отказе прежняя комиссия сохраняется.
func (s *AdminService) UpdateFee(caller models.Address, newBps uint64) (uint64, error) {
	var fee uint64
	err := s.ledger.Update(func(st *repository.State) error {
		if caller != st.Platform.Owner {
			return apperror.ErrNotOwner
		}
		if newBps > models.MaxPlatformFeeBps {
			return apperror.ErrFeeTooHigh
		}
		st.Platform.FeeBps = newBps
		fee = newBps
		return nil
	})
	if err != nil {
		return 0, err
	}
	log().WithField("fee_bps", fee).Info("platform fee updated")
	return fee, nil
}

// TogglePause переключает глобальную паузу. Пока пауза включена, все
// мутирующие операции доски, откликов, эскроу и споров отклоняются;
// read-only запросы продолжают работать.
func (s *AdminService) TogglePause(caller models.Address) (bool, error) {
	var paused bool
	err := s.ledger.Update(func(st *repository.State) error {
		if caller != st.Platform.Owner {
			return apperror.ErrNotOwner
		}
		st.Platform.Paused = !st.Platform.Paused
		paused = st.Platform.Paused
		return nil
	})
	if err != nil {
		return false, err
	}
	log().WithField("paused", paused).Warn("platform pause toggled")
	return paused, nil
}

// EmergencyWithdraw выводит часть свободного баланса владельцу или
// указанному получателю. Свободный баланс — всё удерживаемое сверх
// суммарного эскроу: ниже totalEscrow списание невозможно.
func (s *AdminService) EmergencyWithdraw(caller, to models.Address, amount uint64) error {
	err := s.ledger.Update(func(st *repository.State) error {
		if caller != st.Platform.Owner {
			return apperror.ErrNotOwner
		}
		if amount == 0 {
			return apperror.ErrZeroAmount
		}
		if err := st.CheckEscrowIntegrity(); err != nil {
			return err
		}
		if amount > st.ContractBalance-st.EscrowTotal {
			return apperror.ErrInsufficientFree
		}
		st.ContractBalance -= amount
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.sink.Transfer(to, amount); err != nil {
		log().WithFields(logrus.Fields{
			"to":     to,
			"amount": amount,
			"error":  err.Error(),
		}).Error("emergency withdraw transfer failed, manual reconciliation required")
	}
	return nil
}

// Deposit зачисляет свободные средства на баланс ядра (аналог простого
// перевода в адрес контракта). Не создаёт эскроу-обязательств.
func (s *AdminService) Deposit(from models.Address, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, apperror.ErrZeroAmount
	}
	var balance uint64
	err := s.ledger.Update(func(st *repository.State) error {
		st.ContractBalance += amount
		balance = st.ContractBalance
		return nil
	})
	if err != nil {
		return 0, err
	}
	log().WithFields(logrus.Fields{"from": from, "amount": amount}).Info("deposit received")
	return balance, nil
}

// Fee возвращает текущую комиссию в базисных пунктах.
func (s *AdminService) Fee() uint64 {
	var fee uint64
	s.ledger.View(func(st *repository.State) {
		fee = st.Platform.FeeBps
	})
	return fee
}

// IsPaused возвращает состояние глобальной паузы.
func (s *AdminService) IsPaused() bool {
	var paused bool
	s.ledger.View(func(st *repository.State) {
		paused = st.Platform.Paused
	})
	return paused
}

// Owner возвращает адрес владельца платформы.
func (s *AdminService) Owner() models.Address {
	var owner models.Address
	s.ledger.View(func(st *repository.State) {
		owner = st.Platform.Owner
	})
	return owner
}

// ContractBalance возвращает весь удерживаемый ядром баланс.
func (s *AdminService) ContractBalance() uint64 {
	var balance uint64
	s.ledger.View(func(st *repository.State) {
		balance = st.ContractBalance
	})
	return balance
}

// PlatformStats — агрегированная статистика платформы.
func (s *AdminService) PlatformStats() models.PlatformStats {
	var stats models.PlatformStats
	s.ledger.View(func(st *repository.State) {
		stats = models.PlatformStats{
			TotalJobs:        st.NextJobID - 1,
			TotalProposals:   st.NextProposalID - 1,
			TotalMilestones:  st.NextMilestoneID - 1,
			TotalDisputes:    st.NextDisputeID - 1,
			TotalValueLocked: st.EscrowTotal,
		}
		for _, j := range st.Jobs {
			if j.IsActive() {
				stats.ActiveJobs++
			}
		}
	})
	return stats
}

// Counters возвращает текущие значения счётчиков сущностей.
func (s *AdminService) Counters() models.Counters {
	var counters models.Counters
	s.ledger.View(func(st *repository.State) {
		counters = models.Counters{
			Jobs:       st.NextJobID - 1,
			Proposals:  st.NextProposalID - 1,
			Milestones: st.NextMilestoneID - 1,
			Disputes:   st.NextDisputeID - 1,
		}
	})
	return counters
}
