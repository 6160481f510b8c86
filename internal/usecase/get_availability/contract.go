package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// Store интерфейс хранилища доступности
type Store interface {
	ListBookedTimes(ctx context.Context, date types.DateString) ([]types.TimeString, error)
	IsBlackout(ctx context.Context, date types.DateString) (bool, error)
}

// Policy интерфейс правил рабочего календаря
type Policy interface {
	Catalog() []types.TimeString
	Check(date types.DateString, t types.TimeString, today types.DateString) error
	Today(now time.Time) types.DateString
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
