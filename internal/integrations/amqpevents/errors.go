package amqpevents

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("amqpevents: failed to connect")

	// ErrPublish возвращается, если брокер не принял сообщение
	ErrPublish = errors.New("amqpevents: failed to publish")
)
