package availability

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// BookingStore основное хранилище бронирований
type BookingStore interface {
	TryCommit(ctx context.Context, booking *domain.Booking) error
	ListBookedTimes(ctx context.Context, date types.DateString) ([]types.TimeString, error)
	ListBookings(ctx context.Context, period domain.BookingsRange) ([]*domain.Booking, error)
	Ping(ctx context.Context) error
}

// BlackoutStore основное хранилище выходных дней
type BlackoutStore interface {
	IsBlackout(ctx context.Context, date types.DateString) (bool, error)
	SetBlackout(ctx context.Context, date types.DateString, isBlackout bool) error
	ListBlackouts(ctx context.Context) ([]types.DateString, error)
}

// Mirror вторичная best-effort копия
type Mirror interface {
	MirrorBooking(ctx context.Context, booking *domain.Booking) error
	MirrorBlackout(ctx context.Context, date types.DateString, isBlackout bool) error
}

// Metrics счетчики отказов хранилища
type Metrics interface {
	ObserveStorageFailure(operation string)
	ObserveMirrorFailure(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
