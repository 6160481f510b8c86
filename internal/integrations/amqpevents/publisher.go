package amqpevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
)

const sinkName = "amqp"

// Channel часть amqp.Channel, нужная публикатору
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события о бронированиях в topic exchange
type Publisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	log      Logger
}

// NewPublisher подключается к брокеру и объявляет durable topic exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	p := newPublisher(ch, exchange, log)
	p.conn = conn
	return p, nil
}

func newPublisher(ch Channel, exchange string, log Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, log: log}
}

// Name имя канала в логах и метриках
func (p *Publisher) Name() string {
	return sinkName
}

// Deliver публикует booking.confirmed
func (p *Publisher) Deliver(ctx context.Context, n *notifications.Notification) error {
	b := n.Booking

	body, err := json.Marshal(BookingConfirmed{
		Event:     EventBookingConfirmed,
		BookingID: b.ID,
		Date:      b.Date.String(),
		Time:      b.Time.String(),
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, EventBookingConfirmed, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: booking id=%s: %v", ErrPublish, b.ID, err)
	}

	p.log.Info("AMQP: published %s for booking id=%s", EventBookingConfirmed, b.ID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
