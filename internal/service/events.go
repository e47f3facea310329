package service

import (
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-escrow/internal/logger"
)

// EventSink получает доменные события ядра. Публикация происходит строго
// после фиксации состояния в леджере.
type EventSink interface {
	Emit(event string, data any)
}

// pendingEvent накапливается внутри мутирующей операции и публикуется
// после её фиксации.
type pendingEvent struct {
	name string
	data any
}

func emitAll(sink EventSink, events []pendingEvent) {
	if sink == nil {
		return
	}
	for _, ev := range events {
		sink.Emit(ev.name, ev.data)
	}
}

// log возвращает общий логгер сервисов.
func log() *logrus.Logger {
	if logger.Log != nil {
		return logger.Log
	}
	return logrus.StandardLogger()
}
