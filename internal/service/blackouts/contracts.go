package blackouts

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// Store интерфейс хранилища выходных дней
type Store interface {
	SetBlackout(ctx context.Context, date types.DateString, isBlackout bool) error
	ListBlackouts(ctx context.Context) ([]types.DateString, error)
}

// Guard проверка секрета администратора
type Guard interface {
	Check(secret string) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveBlackoutToggle(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
