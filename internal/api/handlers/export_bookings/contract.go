package export_bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

type ExportService interface {
	Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
