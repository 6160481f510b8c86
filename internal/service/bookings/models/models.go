package models

import (
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// ExportRequest запрос выгрузки бронирований за период (включительно)
type ExportRequest struct {
	From        string
	To          string
	AdminSecret string
}

// ExportResponse готовый файл выгрузки
type ExportResponse struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

// BookingRow строка выгрузки
type BookingRow struct {
	Date      types.DateString
	Time      types.TimeString
	Name      string
	Email     string
	Phone     string
	ID        string
	CreatedAt string
}

// FromDomainBooking конвертирует domain.Booking в строку выгрузки
func FromDomainBooking(b *domain.Booking) BookingRow {
	return BookingRow{
		Date:      b.Date,
		Time:      b.Time,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		ID:        b.ID,
		CreatedAt: b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// Values значения ячеек в порядке колонок Columns
func (r BookingRow) Values() []interface{} {
	return []interface{}{r.Date.String(), r.Time.String(), r.Name, r.Email, r.Phone, r.ID, r.CreatedAt}
}

// Columns заголовки листа выгрузки
var Columns = []string{"Date", "Time", "Name", "Email", "Phone", "Booking ID", "Created At (UTC)"}
