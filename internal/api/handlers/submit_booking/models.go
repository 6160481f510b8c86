package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	submitBooking "github.com/m04kA/SMC-SchedulerService/internal/usecase/submit_booking"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Date  string `json:"date"` // "2025-06-10"
	Time  string `json:"time"` // "09:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

// SubmitBookingResponse тело успешного ответа
type SubmitBookingResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Формат полей проверяет use case, чтобы порядок ошибок был единым
func (r *SubmitBookingRequest) ToUseCaseRequest() *submitBooking.Request {
	return &submitBooking.Request{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Date:  r.Date,
		Time:  r.Time,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		Message: "Success",
		Booking: fromDomainBooking(resp.Booking),
	}
}

func fromDomainBooking(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Date:      b.Date.String(),
		Time:      b.Time.String(),
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
