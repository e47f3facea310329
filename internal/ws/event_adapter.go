package ws

import (
	"github.com/ignatzorin/freelance-escrow/internal/logger"
)

// EventBroadcaster адаптирует хаб под приёмник доменных событий сервисов.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster создаёт новый адаптер.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// Emit рассылает событие в публичную ленту. Ошибка рассылки не прерывает
// доменную операцию: событие уже зафиксировано в леджере.
func (b *EventBroadcaster) Emit(event string, data any) {
	if err := b.hub.Broadcast(event, data); err != nil && logger.Log != nil {
		logger.Log.WithField("event", event).WithError(err).Warn("event broadcast failed")
	}
}
