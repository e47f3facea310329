package service

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-escrow/internal/models"
)

// PaymentSink — внедряемая способность перевести средства получателю.
// Вызывается только после фиксации состояния (checks-effects-interactions):
// к моменту перевода эскроу уже обнулён, поэтому повторный вход в ядро
// через недоверенного получателя не находит средств для двойной выплаты.
type PaymentSink interface {
	Transfer(to models.Address, amount uint64) error
}

// transfer — отложенный перевод, накопленный внутри мутирующей операции.
type transfer struct {
	to     models.Address
	amount uint64
}

// settle выполняет отложенные переводы. Сбой перевода не переоткрывает
// зафиксированное состояние: логируем и оставляем ручную сверку.
func settle(sink PaymentSink, milestoneID uint64, transfers []transfer) {
	for _, t := range transfers {
		if t.amount == 0 {
			continue
		}
		if err := sink.Transfer(t.to, t.amount); err != nil {
			log().WithFields(logrus.Fields{
				"milestone_id": milestoneID,
				"to":           t.to,
				"amount":       t.amount,
				"error":        err.Error(),
			}).Error("payment sink transfer failed, manual reconciliation required")
		}
	}
}

// WalletSink — in-memory реализация PaymentSink: ведёт кошельки
// получателей. Используется сервером по умолчанию и тестами.
type WalletSink struct {
	mu       sync.Mutex
	balances map[models.Address]uint64
}

// NewWalletSink создаёт пустой кошелёк-приёмник.
func NewWalletSink() *WalletSink {
	return &WalletSink{balances: make(map[models.Address]uint64)}
}

// Transfer зачисляет средства на кошелёк получателя.
func (w *WalletSink) Transfer(to models.Address, amount uint64) error {
	if to.IsZero() {
		return fmt.Errorf("wallet sink: transfer to zero address")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[to] += amount
	return nil
}

// Balance возвращает накопленный баланс получателя.
func (w *WalletSink) Balance(addr models.Address) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[addr]
}
