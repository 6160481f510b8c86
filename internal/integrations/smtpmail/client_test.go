package smtpmail

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
)

type fakeSender struct {
	err      error
	block    chan struct{}
	messages []*gomail.Message
}

func (s *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if s.block != nil {
		<-s.block
	}
	s.messages = append(s.messages, m...)
	return s.err
}

func testConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "scheduler@flated.com",
		Password: "pw",
		FromName: "Flated Scheduler",
		Subject:  "Call Scheduled - Flated",
		SignOff:  "Flated Team",
	}
}

func testNotification() *notifications.Notification {
	return &notifications.Notification{
		Booking: &domain.Booking{ID: "b1", Date: "2025-06-10", Time: "09:00", Name: "Ann", Email: "ann@x.com", Phone: "555", CreatedAt: time.Now()},
		Invite:  &notifications.Invite{UID: "b1@scheduler", ICS: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")},
		Recipients: []notifications.Recipient{
			{Party: notifications.Party{Name: "Info", Email: "info@flated.com"}},
			{Party: notifications.Party{Name: "Joe", Email: "joe@flated.com"}, Optional: true},
		},
	}
}

func TestClient_Deliver(t *testing.T) {
	sender := &fakeSender{}
	c := newClient(testConfig(), sender, logger.NewNop())

	require.NoError(t, c.Deliver(context.Background(), testNotification()))
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"ann@x.com", "info@flated.com", "joe@flated.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Call Scheduled - Flated"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Hello Ann,")
	assert.Contains(t, raw, "scheduled for 2025-06-10 at 09:00 MST.")
	assert.Contains(t, raw, `filename="invite.ics"`)
	assert.Contains(t, raw, "text/calendar")
}

func TestClient_SkipsWithoutCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Password = ""
	c := NewClient(cfg, logger.NewNop())

	err := c.Deliver(context.Background(), testNotification())
	assert.ErrorIs(t, err, notifications.ErrSkipped)
}

func TestClient_SendError(t *testing.T) {
	c := newClient(testConfig(), &fakeSender{err: errors.New("535 auth failed")}, logger.NewNop())

	err := c.Deliver(context.Background(), testNotification())
	assert.ErrorIs(t, err, ErrSend)
}

func TestClient_ContextDeadline(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{})}
	defer close(sender.block)
	c := newClient(testConfig(), sender, logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Deliver(ctx, testNotification())
	assert.ErrorIs(t, err, ErrSend)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
