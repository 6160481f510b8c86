package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

const (
	DefaultOperationTimeout = 3 * time.Second
	DefaultMirrorTimeout    = 2 * time.Second
)

// Options параметры хранилища
type Options struct {
	// OperationTimeout ограничение на каждую операцию основного хранилища
	OperationTimeout time.Duration
	// MirrorTimeout ограничение на одну запись в зеркало
	MirrorTimeout time.Duration
}

// Store объединяет основное хранилище и необязательное зеркало
// Ошибки зеркала не доходят до вызывающего кода
type Store struct {
	bookings  BookingStore
	blackouts BlackoutStore
	mirror    Mirror
	metrics   Metrics
	logger    Logger

	opTimeout     time.Duration
	mirrorTimeout time.Duration

	wg sync.WaitGroup
}

// NewStore создает хранилище; mirror и metrics могут быть nil
func NewStore(bookings BookingStore, blackouts BlackoutStore, mirror Mirror, metrics Metrics, logger Logger, opts Options) *Store {
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = DefaultOperationTimeout
	}
	if opts.MirrorTimeout <= 0 {
		opts.MirrorTimeout = DefaultMirrorTimeout
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Store{
		bookings:      bookings,
		blackouts:     blackouts,
		mirror:        mirror,
		metrics:       metrics,
		logger:        logger,
		opTimeout:     opts.OperationTimeout,
		mirrorTimeout: opts.MirrorTimeout,
	}
}

// TryCommit сохраняет бронирование, если слот свободен
// Возвращает domain.ErrSlotOccupied, если слот уже занят
func (s *Store) TryCommit(ctx context.Context, booking *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.bookings.TryCommit(ctx, booking); err != nil {
		return s.fail("try_commit", err)
	}

	if s.mirror != nil {
		b := *booking
		s.goMirror("booking", func(ctx context.Context) error {
			return s.mirror.MirrorBooking(ctx, &b)
		})
	}

	return nil
}

// ListBookedTimes возвращает занятые слоты даты
func (s *Store) ListBookedTimes(ctx context.Context, date types.DateString) ([]types.TimeString, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	times, err := s.bookings.ListBookedTimes(ctx, date)
	if err != nil {
		return nil, s.fail("list_booked_times", err)
	}
	return times, nil
}

// ListBookings возвращает бронирования за период
func (s *Store) ListBookings(ctx context.Context, period domain.BookingsRange) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	bookings, err := s.bookings.ListBookings(ctx, period)
	if err != nil {
		return nil, s.fail("list_bookings", err)
	}
	return bookings, nil
}

// IsBlackout проверяет, отмечена ли дата как выходной
func (s *Store) IsBlackout(ctx context.Context, date types.DateString) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	isBlackout, err := s.blackouts.IsBlackout(ctx, date)
	if err != nil {
		return false, s.fail("is_blackout", err)
	}
	return isBlackout, nil
}

// SetBlackout идемпотентно устанавливает или снимает выходной
func (s *Store) SetBlackout(ctx context.Context, date types.DateString, isBlackout bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.blackouts.SetBlackout(ctx, date, isBlackout); err != nil {
		return s.fail("set_blackout", err)
	}

	if s.mirror != nil {
		s.goMirror("blackout", func(ctx context.Context) error {
			return s.mirror.MirrorBlackout(ctx, date, isBlackout)
		})
	}

	return nil
}

// ListBlackouts возвращает все выходные дни
func (s *Store) ListBlackouts(ctx context.Context) ([]types.DateString, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	dates, err := s.blackouts.ListBlackouts(ctx)
	if err != nil {
		return nil, s.fail("list_blackouts", err)
	}
	return dates, nil
}

// Ping проверяет доступность основного хранилища
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.bookings.Ping(ctx); err != nil {
		return s.fail("ping", err)
	}
	return nil
}

// Close дожидается завершения записей в зеркало или отмены ctx
func (s *Store) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) fail(operation string, err error) error {
	if errors.Is(err, domain.ErrSlotOccupied) {
		return err
	}

	s.metrics.ObserveStorageFailure(operation)
	s.logger.Error("availability.Store: %s failed: %v", operation, err)
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, operation, err)
}

// goMirror запускает запись в зеркало вне пути запроса
func (s *Store) goMirror(operation string, write func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.mirrorTimeout)
		defer cancel()

		if err := write(ctx); err != nil {
			s.metrics.ObserveMirrorFailure(operation)
			s.logger.Warn("availability.Store: mirror %s failed: %v", operation, err)
		}
	}()
}

type noopMetrics struct{}

func (noopMetrics) ObserveStorageFailure(string) {}
func (noopMetrics) ObserveMirrorFailure(string)  {}
