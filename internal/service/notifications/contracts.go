package notifications

import (
	"context"
)

// Sink канал доставки уведомления (email, календарь, брокер)
type Sink interface {
	Name() string
	Deliver(ctx context.Context, n *Notification) error
}

// Metrics интерфейс метрик доставки
type Metrics interface {
	ObserveNotification(sink, result string)
	ObserveNotificationDropped()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
