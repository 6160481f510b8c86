package bookings

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulerService/internal/service/adminauth"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for _, b := range []*domain.Booking{
		{ID: "b2", Date: "2025-06-10", Time: "13:00", Name: "Bob", Email: "b@x.com", Phone: "2", CreatedAt: created},
		{ID: "b1", Date: "2025-06-10", Time: "09:00", Name: "Ann", Email: "a@x.com", Phone: "1", CreatedAt: created},
		{ID: "b3", Date: "2025-07-01", Time: "09:00", Name: "Cid", Email: "c@x.com", Phone: "3", CreatedAt: created},
	} {
		require.NoError(t, store.TryCommit(ctx, b))
	}

	return NewService(store, adminauth.NewGuard("s3cret"), logger.NewNop())
}

func TestService_Export(t *testing.T) {
	s := newService(t)

	resp, err := s.Export(context.Background(), &models.ExportRequest{From: "2025-06-01", To: "2025-06-30", AdminSecret: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Rows)
	assert.Equal(t, "bookings_2025-06-01_2025-06-30.xlsx", resp.Filename)
	assert.Equal(t, xlsxContentType, resp.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(resp.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, []string{"2025-06-10", "09:00", "Ann", "a@x.com", "1", "b1", "2025-06-01 08:00:00"}, rows[1])
	assert.Equal(t, "b2", rows[2][5])
}

func TestService_ExportUnauthorized(t *testing.T) {
	s := newService(t)

	_, err := s.Export(context.Background(), &models.ExportRequest{From: "bad", To: "bad", AdminSecret: "nope"})
	assert.ErrorIs(t, err, adminauth.ErrUnauthorized)
}

func TestService_ExportInvalidRange(t *testing.T) {
	s := newService(t)

	tests := []struct{ from, to string }{
		{"", "2025-06-30"},
		{"2025-06-01", "junk"},
		{"2025-06-30", "2025-06-01"},
		{"2024-01-01", "2025-06-01"},
	}
	for _, tt := range tests {
		_, err := s.Export(context.Background(), &models.ExportRequest{From: tt.from, To: tt.to, AdminSecret: "s3cret"})
		assert.ErrorIs(t, err, ErrInvalidRange, tt.from+".."+tt.to)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}
