package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// Store интерфейс хранилища доступности
type Store interface {
	IsBlackout(ctx context.Context, date types.DateString) (bool, error)
	ListBookedTimes(ctx context.Context, date types.DateString) ([]types.TimeString, error)
	TryCommit(ctx context.Context, booking *domain.Booking) error
}

// Policy интерфейс правил рабочего календаря
type Policy interface {
	IsSlotAligned(t types.TimeString) bool
	Check(date types.DateString, t types.TimeString, today types.DateString) error
	Today(now time.Time) types.DateString
}

// Dispatcher интерфейс отправки уведомлений о подтвержденном бронировании
// Enqueue не должен блокироваться
type Dispatcher interface {
	Enqueue(booking *domain.Booking) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
