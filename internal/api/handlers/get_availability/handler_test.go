package get_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulerService/internal/service/calendar"
	getAvailability "github.com/m04kA/SMC-SchedulerService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
)

func newHandler(t *testing.T, store *memory.Store) *Handler {
	t.Helper()
	p, err := calendar.NewPolicy(calendar.DefaultConfig())
	require.NoError(t, err)
	return NewHandler(getAvailability.NewUseCase(store, p, logger.NewNop()), logger.NewNop())
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Availability(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.TryCommit(context.Background(), &domain.Booking{
		ID: "b1", Date: "2025-06-10", Time: "09:00", CreatedAt: time.Now(),
	}))

	rec := get(newHandler(t, store), "/api/v1/availability?date=2025-06-10")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"date":"2025-06-10"`)
	assert.Contains(t, body, `"bookedTimes":["09:00"]`)
	assert.Contains(t, body, `"isBlackout":false`)
	assert.Contains(t, body, `{"time":"09:00","available":false,"reason":"booked"}`)
	assert.Contains(t, body, `{"time":"09:30","available":true}`)
	assert.NotContains(t, body, `"12:00"`)
}

func TestHandle_EmptyDayHasEmptyArray(t *testing.T) {
	rec := get(newHandler(t, memory.NewStore()), "/api/v1/availability?date=2025-06-11")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookedTimes":[]`)
}

func TestHandle_BadDate(t *testing.T) {
	h := newHandler(t, memory.NewStore())

	rec := get(h, "/api/v1/availability")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Date is required","code":"missing_date"}`, rec.Body.String())

	rec = get(h, "/api/v1/availability?date=2025-6-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"bad_date_format"`)
}
