package notifications

import "errors"

var (
	// ErrDeliveryFailed канал не смог доставить уведомление
	ErrDeliveryFailed = errors.New("notifications: delivery failed")

	// ErrQueueFull очередь переполнена, уведомление отброшено
	ErrQueueFull = errors.New("notifications: queue is full")

	// ErrStopped диспетчер остановлен
	ErrStopped = errors.New("notifications: dispatcher stopped")

	// ErrSkipped канал не настроен и пропустил уведомление
	ErrSkipped = errors.New("notifications: sink skipped")

	// ErrInvite не удалось сформировать приглашение
	ErrInvite = errors.New("notifications: failed to build invite")
)
