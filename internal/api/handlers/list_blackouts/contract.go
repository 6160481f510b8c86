package list_blackouts

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

type BlackoutService interface {
	List(ctx context.Context) ([]types.DateString, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
