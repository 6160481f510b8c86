package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// UseCase use case для создания бронирования слота
// Единственный код, который добавляет бронирования в хранилище
type UseCase struct {
	store        Store
	policy       Policy
	dispatcher   Dispatcher
	metrics      Metrics
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// dispatcher и metrics могут быть nil
func NewUseCase(
	store Store,
	policy Policy,
	dispatcher Dispatcher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		policy:       policy,
		dispatcher:   dispatcher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// Execute проверяет запрос и атомарно занимает слот
// Received -> Validated -> PolicyChecked -> ConflictChecked -> Committed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: date=%s, time=%s", req.Date, req.Time)

	// 1. Формат полей
	v, err := validateRequest(req, uc.policy.IsSlotAligned)
	if err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Правила календаря
	now := uc.timeProvider.Now()
	if err := uc.policy.Check(v.date, v.time, uc.policy.Today(now)); err != nil {
		uc.logger.Warn("SubmitBooking: %s %s rejected by policy: %v", v.date, v.time, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPolicy, err)
	}

	// 3. Выходной, назначенный администратором
	isBlackout, err := uc.store.IsBlackout(ctx, v.date)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to check blackout for %s: %v", v.date, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if isBlackout {
		uc.logger.Warn("SubmitBooking: %s is blacked out", v.date)
		return nil, fmt.Errorf("%w: %w", domain.ErrPolicy, ErrBlackout)
	}

	// 4. Предварительная проверка занятости
	booked, err := uc.store.ListBookedTimes(ctx, v.date)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to list booked times for %s: %v", v.date, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if containsTime(booked, v.time) {
		uc.logger.Warn("SubmitBooking: slot %s %s already taken", v.date, v.time)
		return nil, fmt.Errorf("%w: %w", domain.ErrConflict, ErrSlotTaken)
	}

	// 5. Атомарная запись; гонку между проверкой и записью решает хранилище
	booking := &domain.Booking{
		ID:        uc.newID(),
		Date:      v.date,
		Time:      v.time,
		Name:      v.name,
		Email:     v.email,
		Phone:     v.phone,
		CreatedAt: now.UTC(),
	}

	if err := uc.store.TryCommit(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrSlotOccupied) {
			uc.logger.Warn("SubmitBooking: lost race for slot %s", booking.SlotKey())
			return nil, fmt.Errorf("%w: %w", domain.ErrConflict, ErrSlotTaken)
		}
		uc.logger.Error("SubmitBooking: failed to commit booking %s: %v", booking.SlotKey(), err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	uc.logger.Info("SubmitBooking: committed booking id=%s for %s", booking.ID, booking.SlotKey())

	// 6. Уведомления; ошибка не отменяет бронирование
	if uc.dispatcher != nil {
		if err := uc.dispatcher.Enqueue(booking); err != nil {
			uc.logger.Warn("SubmitBooking: notifications for booking id=%s not scheduled: %v", booking.ID, err)
		}
	}

	return &Response{Booking: booking}, nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	if err == nil {
		uc.metrics.ObserveBooking(outcomeSuccess)
		return
	}
	uc.metrics.ObserveBooking(Code(err))
}
