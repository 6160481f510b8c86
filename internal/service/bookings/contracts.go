package bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	ListBookings(ctx context.Context, period domain.BookingsRange) ([]*domain.Booking, error)
}

// Guard проверка секрета администратора
type Guard interface {
	Check(secret string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
