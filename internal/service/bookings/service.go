package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// MaxExportDays максимальная длина периода выгрузки
const MaxExportDays = 366

// Service сервис выгрузки бронирований для администратора
type Service struct {
	bookingRepo BookingRepository
	guard       Guard
	logger      Logger
}

// NewService создает новый экземпляр сервиса выгрузки
func NewService(bookingRepo BookingRepository, guard Guard, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		guard:       guard,
		logger:      logger,
	}
}

// Export проверяет секрет и период, затем формирует xlsx со всеми бронированиями периода
func (s *Service) Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	if err := s.guard.Check(req.AdminSecret); err != nil {
		s.logger.Warn("ExportBookings: rejected admin secret")
		return nil, err
	}

	period, err := parseRange(req.From, req.To)
	if err != nil {
		s.logger.Warn("ExportBookings: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListBookings(ctx, period)
	if err != nil {
		s.logger.Error("ExportBookings: repository error for %s..%s: %v", period.From, period.To, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	rows := make([]models.BookingRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, models.FromDomainBooking(b))
	}

	content, err := renderXLSX(rows)
	if err != nil {
		s.logger.Error("ExportBookings: render failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	s.logger.Info("ExportBookings: exported %d bookings for %s..%s", len(rows), period.From, period.To)

	return &models.ExportResponse{
		Filename:    fmt.Sprintf("bookings_%s_%s.xlsx", period.From, period.To),
		ContentType: xlsxContentType,
		Content:     content,
		Rows:        len(rows),
	}, nil
}

func parseRange(rawFrom, rawTo string) (domain.BookingsRange, error) {
	from, err := types.NewDateStringFromString(strings.TrimSpace(rawFrom))
	if err != nil {
		return domain.BookingsRange{}, fmt.Errorf("%w: %w: from: %v", domain.ErrValidation, ErrInvalidRange, err)
	}
	to, err := types.NewDateStringFromString(strings.TrimSpace(rawTo))
	if err != nil {
		return domain.BookingsRange{}, fmt.Errorf("%w: %w: to: %v", domain.ErrValidation, ErrInvalidRange, err)
	}
	if to.IsBefore(from) {
		return domain.BookingsRange{}, fmt.Errorf("%w: %w: %s is before %s", domain.ErrValidation, ErrInvalidRange, to, from)
	}
	if days := int(to.Time().Sub(from.Time()).Hours() / 24); days >= MaxExportDays {
		return domain.BookingsRange{}, fmt.Errorf("%w: %w: period longer than %d days", domain.ErrValidation, ErrInvalidRange, MaxExportDays)
	}
	return domain.BookingsRange{From: from, To: to}, nil
}
