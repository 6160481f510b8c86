package googlecalendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := newClient(context.Background(),
		Config{CalendarID: "team@flated.com", TimeZone: "America/Denver"},
		logger.NewNop(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)
	return c
}

func testNotification() *notifications.Notification {
	return &notifications.Notification{
		Booking: &domain.Booking{ID: "b1", Date: "2025-06-10", Time: "11:30", Name: "Ann", Email: "ann@x.com", Phone: "555"},
		Invite:  &notifications.Invite{UID: "b1@scheduler"},
	}
}

func TestClient_Deliver(t *testing.T) {
	var got calendar.Event
	var path string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-1"}`))
	})

	require.NoError(t, c.Deliver(context.Background(), testNotification()))

	assert.Equal(t, "/calendars/team@flated.com/events", path)
	assert.Equal(t, "Call with Ann", got.Summary)
	assert.Equal(t, "2025-06-10T11:30:00", got.Start.DateTime)
	assert.Equal(t, "2025-06-10T12:00:00", got.End.DateTime)
	assert.Equal(t, "America/Denver", got.Start.TimeZone)
	assert.Equal(t, "b1@scheduler", got.ICalUID)
}

func TestClient_DeliverError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	})

	err := c.Deliver(context.Background(), testNotification())
	assert.ErrorIs(t, err, ErrInsert)
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{ServiceAccountEmail: "sa@x.iam.gserviceaccount.com"}.Enabled())
	assert.True(t, Config{ServiceAccountEmail: "sa@x", PrivateKey: "key"}.Enabled())
}
