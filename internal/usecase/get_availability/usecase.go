package get_availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/calendar"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// UseCase use case для получения доступности слотов на дату
type UseCase struct {
	store        Store
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store Store, policy Policy, logger Logger) *UseCase {
	return &UseCase{
		store:        store,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает доступность слотов
// Каждый слот каталога проверяется тем же Policy.Check, что и при бронировании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	raw := strings.TrimSpace(req.Date)
	if raw == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrMissingDate)
	}

	date, err := types.NewDateStringFromString(raw)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date %q: %v", raw, err)
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrValidation, ErrInvalidDate, err)
	}

	booked, err := uc.store.ListBookedTimes(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list booked times for %s: %v", date, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	isBlackout, err := uc.store.IsBlackout(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to check blackout for %s: %v", date, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	day := domain.NewDayAvailability(date, booked, isBlackout)
	today := uc.policy.Today(uc.timeProvider.Now())

	catalog := uc.policy.Catalog()
	slots := make([]domain.SlotStatus, 0, len(catalog))
	for _, t := range catalog {
		slots = append(slots, uc.slotStatus(day, t, today))
	}

	uc.logger.Info("GetAvailability: date=%s, booked=%d, blackout=%t", date, len(day.BookedTimes), isBlackout)

	return &Response{
		Date:        date,
		BookedTimes: day.BookedTimes,
		IsBlackout:  isBlackout,
		Slots:       slots,
	}, nil
}

// slotStatus причина недоступности выбирается в том же порядке, что и при бронировании:
// правила календаря, выходной администратора, занятость
func (uc *UseCase) slotStatus(day *domain.DayAvailability, t types.TimeString, today types.DateString) domain.SlotStatus {
	if err := uc.policy.Check(day.Date, t, today); err != nil {
		return domain.SlotStatus{Time: t, Reason: calendar.Reason(err)}
	}
	if day.IsBlackout {
		return domain.SlotStatus{Time: t, Reason: domain.SlotReasonBlackout}
	}
	if day.IsBooked(t) {
		return domain.SlotStatus{Time: t, Reason: domain.SlotReasonBooked}
	}
	return domain.SlotStatus{Time: t, Available: true}
}
