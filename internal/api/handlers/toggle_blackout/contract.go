package toggle_blackout

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/service/blackouts"
)

type BlackoutService interface {
	Toggle(ctx context.Context, req *blackouts.ToggleRequest) (*blackouts.ToggleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
