package submit_booking

import "github.com/m04kA/SMC-SchedulerService/internal/domain"

// Request запрос на бронирование в том виде, в каком его прислал клиент
type Request struct {
	Name  string
	Email string
	Phone string
	Date  string // YYYY-MM-DD
	Time  string // HH:MM
}

// Response подтвержденное бронирование
type Response struct {
	Booking *domain.Booking
}
