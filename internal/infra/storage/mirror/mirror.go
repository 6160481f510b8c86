package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

var (
	ErrEncode = errors.New("mirror: failed to encode booking")
	ErrWrite  = errors.New("mirror: failed to write to redis")
)

const (
	bookingsKey  = "bookings:"
	blackoutsKey = "blackout_dates"
)

// record формат бронирования в зеркале
type record struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// Mirror вторичная копия бронирований и выходных дней в Redis
// Читать из зеркала сервис не умеет, источником истины остаётся основное хранилище
type Mirror struct {
	client redis.UniversalClient
	prefix string
}

// New создает зеркало поверх клиента Redis
func New(client redis.UniversalClient, prefix string) *Mirror {
	return &Mirror{client: client, prefix: prefix}
}

// BookingsKey ключ списка бронирований даты
func (m *Mirror) BookingsKey(date types.DateString) string {
	return m.prefix + bookingsKey + date.String()
}

// BlackoutsKey ключ множества выходных дней
func (m *Mirror) BlackoutsKey() string {
	return m.prefix + blackoutsKey
}

// MirrorBooking добавляет бронирование в список даты
func (m *Mirror) MirrorBooking(ctx context.Context, booking *domain.Booking) error {
	payload, err := json.Marshal(record{
		ID:        booking.ID,
		Date:      booking.Date.String(),
		Time:      booking.Time.String(),
		Name:      booking.Name,
		Email:     booking.Email,
		Phone:     booking.Phone,
		CreatedAt: booking.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: MirrorBooking - marshal: %v", ErrEncode, err)
	}

	if err := m.client.LPush(ctx, m.BookingsKey(booking.Date), payload).Err(); err != nil {
		return fmt.Errorf("%w: MirrorBooking - lpush: %v", ErrWrite, err)
	}

	return nil
}

// MirrorBlackout добавляет или удаляет дату из множества выходных
func (m *Mirror) MirrorBlackout(ctx context.Context, date types.DateString, isBlackout bool) error {
	var err error
	if isBlackout {
		err = m.client.SAdd(ctx, m.BlackoutsKey(), date.String()).Err()
	} else {
		err = m.client.SRem(ctx, m.BlackoutsKey(), date.String()).Err()
	}

	if err != nil {
		return fmt.Errorf("%w: MirrorBlackout - %s: %v", ErrWrite, date, err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func (m *Mirror) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrWrite, err)
	}
	return nil
}

// Close закрывает клиент Redis
func (m *Mirror) Close() error {
	return m.client.Close()
}
