package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// day бронирования одной даты под собственной блокировкой
type day struct {
	mu       sync.Mutex
	bookings map[types.TimeString]domain.Booking
}

// Store хранилище в памяти процесса
// TryCommit блокирует только мьютекс своей даты, поэтому записи на разные даты не мешают друг другу
type Store struct {
	mu        sync.Mutex
	days      map[types.DateString]*day
	blackouts map[types.DateString]struct{}
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		days:      make(map[types.DateString]*day),
		blackouts: make(map[types.DateString]struct{}),
	}
}

// dayFor возвращает (создавая при необходимости) бакет даты
func (s *Store) dayFor(date types.DateString) *day {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.days[date]
	if !ok {
		d = &day{bookings: make(map[types.TimeString]domain.Booking)}
		s.days[date] = d
	}
	return d
}

// TryCommit атомарно добавляет бронирование, если слот свободен
func (s *Store) TryCommit(ctx context.Context, booking *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d := s.dayFor(booking.Date)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.bookings[booking.Time]; taken {
		return domain.ErrSlotOccupied
	}
	d.bookings[booking.Time] = *booking

	return nil
}

// ListBookedTimes возвращает занятые слоты даты по возрастанию
func (s *Store) ListBookedTimes(ctx context.Context, date types.DateString) ([]types.TimeString, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := s.dayFor(date)

	d.mu.Lock()
	times := make([]types.TimeString, 0, len(d.bookings))
	for t := range d.bookings {
		times = append(times, t)
	}
	d.mu.Unlock()

	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })
	return times, nil
}

// ListBookings возвращает бронирования за период по дате и времени
func (s *Store) ListBookings(ctx context.Context, period domain.BookingsRange) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	dates := make([]types.DateString, 0, len(s.days))
	for date := range s.days {
		if period.Contains(date) {
			dates = append(dates, date)
		}
	}
	s.mu.Unlock()

	sort.Slice(dates, func(i, j int) bool { return dates[i].IsBefore(dates[j]) })

	result := make([]*domain.Booking, 0)
	for _, date := range dates {
		d := s.dayFor(date)

		d.mu.Lock()
		dayBookings := make([]*domain.Booking, 0, len(d.bookings))
		for _, b := range d.bookings {
			b := b
			dayBookings = append(dayBookings, &b)
		}
		d.mu.Unlock()

		sort.Slice(dayBookings, func(i, j int) bool { return dayBookings[i].Time.IsBefore(dayBookings[j].Time) })
		result = append(result, dayBookings...)
	}

	return result, nil
}

// IsBlackout проверяет, отмечена ли дата как выходной
func (s *Store) IsBlackout(ctx context.Context, date types.DateString) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.blackouts[date]
	return ok, nil
}

// SetBlackout идемпотентно устанавливает или снимает выходной
// Существующие бронирования даты не затрагиваются
func (s *Store) SetBlackout(ctx context.Context, date types.DateString, isBlackout bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if isBlackout {
		s.blackouts[date] = struct{}{}
	} else {
		delete(s.blackouts, date)
	}
	return nil
}

// ListBlackouts возвращает выходные дни по возрастанию
func (s *Store) ListBlackouts(ctx context.Context) ([]types.DateString, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	dates := make([]types.DateString, 0, len(s.blackouts))
	for d := range s.blackouts {
		dates = append(dates, d)
	}
	s.mu.Unlock()

	sort.Slice(dates, func(i, j int) bool { return dates[i].IsBefore(dates[j]) })
	return dates, nil
}

// Ping всегда успешен
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
