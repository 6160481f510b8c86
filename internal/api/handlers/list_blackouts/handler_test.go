package list_blackouts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

type stubService struct {
	dates []types.DateString
	err   error
}

func (s stubService) List(context.Context) ([]types.DateString, error) {
	return s.dates, s.err
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubService{dates: []types.DateString{"2025-06-11", "2025-08-01"}}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/blackouts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"blackoutDates":["2025-06-11","2025-08-01"]}`, rec.Body.String())
}

func TestHandle_Empty(t *testing.T) {
	h := NewHandler(stubService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/blackouts", nil))

	assert.JSONEq(t, `{"blackoutDates":[]}`, rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	h := NewHandler(stubService{err: errors.New("db down")}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/blackouts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
