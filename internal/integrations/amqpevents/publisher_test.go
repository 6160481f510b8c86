package amqpevents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func testNotification() *notifications.Notification {
	return &notifications.Notification{
		Booking: &domain.Booking{
			ID: "b1", Date: "2025-06-10", Time: "09:00", Name: "Ann", Email: "ann@x.com", Phone: "555",
			CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestPublisher_Deliver(t *testing.T) {
	ch := &mockChannel{}
	var published amqp.Publishing
	ch.On("PublishWithContext", "scheduler", EventBookingConfirmed, mock.AnythingOfType("amqp091.Publishing")).
		Run(func(args mock.Arguments) { published = args.Get(2).(amqp.Publishing) }).
		Return(nil).Once()

	p := newPublisher(ch, "scheduler", logger.NewNop())
	require.NoError(t, p.Deliver(context.Background(), testNotification()))
	ch.AssertExpectations(t)

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), published.DeliveryMode)
	assert.NotEmpty(t, published.MessageId)

	var event BookingConfirmed
	require.NoError(t, json.Unmarshal(published.Body, &event))
	assert.Equal(t, EventBookingConfirmed, event.Event)
	assert.Equal(t, "b1", event.BookingID)
	assert.Equal(t, "2025-06-10", event.Date)
	assert.Equal(t, "09:00", event.Time)
}

func TestPublisher_DeliverError(t *testing.T) {
	ch := &mockChannel{}
	ch.On("PublishWithContext", "scheduler", EventBookingConfirmed, mock.Anything).Return(errors.New("channel closed"))

	p := newPublisher(ch, "scheduler", logger.NewNop())
	err := p.Deliver(context.Background(), testNotification())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_Close(t *testing.T) {
	ch := &mockChannel{}
	ch.On("Close").Return(nil).Once()

	p := newPublisher(ch, "scheduler", logger.NewNop())
	assert.NoError(t, p.Close())
	ch.AssertExpectations(t)
}
