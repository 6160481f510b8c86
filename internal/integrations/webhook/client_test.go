package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
)

func testNotification() *notifications.Notification {
	return &notifications.Notification{
		Booking: &domain.Booking{ID: "b1", Date: "2025-06-10", Time: "09:00", Name: "Ann", Email: "ann@x.com", Phone: "555"},
		Invite:  &notifications.Invite{UID: "b1@scheduler"},
	}
}

func TestClient_Deliver(t *testing.T) {
	var (
		got    BookingPayload
		secret string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret = r.Header.Get(secretHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "hook-secret", time.Second, logger.NewNop())
	require.NoError(t, c.Deliver(context.Background(), testNotification()))

	assert.Equal(t, "hook-secret", secret)
	assert.Equal(t, "booking.confirmed", got.Event)
	assert.Equal(t, "b1", got.BookingID)
	assert.Equal(t, "b1@scheduler", got.InviteUID)
}

func TestClient_DeliverBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "", time.Second, logger.NewNop())
	err := c.Deliver(context.Background(), testNotification())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_DeliverUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewClient(url, "", time.Second, logger.NewNop())
	err := c.Deliver(context.Background(), testNotification())
	assert.ErrorIs(t, err, ErrInternal)
}
