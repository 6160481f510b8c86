package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

type mockMirror struct {
	mock.Mock
}

func (m *mockMirror) MirrorBooking(ctx context.Context, booking *domain.Booking) error {
	return m.Called(booking.SlotKey()).Error(0)
}

func (m *mockMirror) MirrorBlackout(ctx context.Context, date types.DateString, isBlackout bool) error {
	return m.Called(date, isBlackout).Error(0)
}

type mockMetrics struct {
	mu      sync.Mutex
	storage []string
	mirror  []string
}

func (m *mockMetrics) ObserveStorageFailure(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storage = append(m.storage, operation)
}

func (m *mockMetrics) ObserveMirrorFailure(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mirror = append(m.mirror, operation)
}

// slowStore блокируется до отмены контекста
type slowStore struct {
	*memory.Store
}

func (s slowStore) ListBookedTimes(ctx context.Context, _ types.DateString) ([]types.TimeString, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type brokenStore struct {
	*memory.Store
}

func (brokenStore) TryCommit(context.Context, *domain.Booking) error {
	return errors.New("connection refused")
}

func newBooking(date types.DateString, tm types.TimeString) *domain.Booking {
	return &domain.Booking{ID: "id", Date: date, Time: tm, Name: "A", Email: "a@x.com", Phone: "555"}
}

func TestStore_CommitMirrorsBooking(t *testing.T) {
	primary := memory.NewStore()
	mirror := &mockMirror{}
	mirror.On("MirrorBooking", "2025-06-10 09:00").Return(nil).Once()

	s := NewStore(primary, primary, mirror, nil, logger.NewNop(), Options{})

	require.NoError(t, s.TryCommit(context.Background(), newBooking("2025-06-10", "09:00")))
	require.NoError(t, s.Close(context.Background()))

	mirror.AssertExpectations(t)
}

func TestStore_ConflictPassesThrough(t *testing.T) {
	primary := memory.NewStore()
	metrics := &mockMetrics{}
	s := NewStore(primary, primary, nil, metrics, logger.NewNop(), Options{})
	ctx := context.Background()

	require.NoError(t, s.TryCommit(ctx, newBooking("2025-06-10", "09:00")))

	err := s.TryCommit(ctx, newBooking("2025-06-10", "09:00"))
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.Empty(t, metrics.storage)
}

func TestStore_MirrorFailureIsNotSurfaced(t *testing.T) {
	primary := memory.NewStore()
	metrics := &mockMetrics{}
	mirror := &mockMirror{}
	mirror.On("MirrorBlackout", types.DateString("2025-06-11"), true).Return(errors.New("redis down")).Once()

	s := NewStore(primary, primary, mirror, metrics, logger.NewNop(), Options{})

	require.NoError(t, s.SetBlackout(context.Background(), "2025-06-11", true))
	require.NoError(t, s.Close(context.Background()))

	isBlackout, err := s.IsBlackout(context.Background(), "2025-06-11")
	require.NoError(t, err)
	assert.True(t, isBlackout)
	assert.Equal(t, []string{"blackout"}, metrics.mirror)
	mirror.AssertExpectations(t)
}

func TestStore_TimeoutBecomesStorageUnavailable(t *testing.T) {
	primary := slowStore{memory.NewStore()}
	metrics := &mockMetrics{}
	s := NewStore(primary, primary, nil, metrics, logger.NewNop(), Options{OperationTimeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := s.ListBookedTimes(context.Background(), "2025-06-10")

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, []string{"list_booked_times"}, metrics.storage)
}

func TestStore_DriverFaultBecomesStorageUnavailable(t *testing.T) {
	primary := brokenStore{memory.NewStore()}
	mirror := &mockMirror{}
	s := NewStore(primary, primary, mirror, nil, logger.NewNop(), Options{})

	err := s.TryCommit(context.Background(), newBooking("2025-06-10", "09:00"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	require.NoError(t, s.Close(context.Background()))
	mirror.AssertNotCalled(t, "MirrorBooking", mock.Anything)
}
