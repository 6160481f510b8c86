package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// Схема одинакова для postgres и sqlite: дата и время хранятся строками,
// уникальность слота обеспечивает UNIQUE (booking_date, start_time)
const schema = `CREATE TABLE IF NOT EXISTS bookings (
	id           TEXT PRIMARY KEY,
	booking_date TEXT NOT NULL,
	start_time   TEXT NOT NULL,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL,
	phone        TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	CONSTRAINT bookings_slot_unique UNIQUE (booking_date, start_time)
)`

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	builder *sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, builder *sqlbuilder.Builder) *Repository {
	return &Repository{db: db, builder: builder}
}

// Migrate создает таблицу bookings, если её ещё нет
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: bookings: %v", ErrMigrate, err)
	}
	return nil
}

// TryCommit сохраняет бронирование, только если слот (дата, время) свободен
// Атомарность обеспечивает уникальный ключ: INSERT ... ON CONFLICT DO NOTHING
// из двух конкурентных вставок на один слот строку добавит ровно одна.
// Если строка не добавлена, возвращает domain.ErrSlotOccupied
func (r *Repository) TryCommit(ctx context.Context, booking *domain.Booking) error {
	query, args, err := r.builder.Insert("bookings").
		Columns(
			"id",
			"booking_date",
			"start_time",
			"name",
			"email",
			"phone",
			"created_at",
		).
		Values(
			booking.ID,
			booking.Date,
			booking.Time,
			booking.Name,
			booking.Email,
			booking.Phone,
			booking.CreatedAt.UTC(),
		).
		Suffix("ON CONFLICT (booking_date, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TryCommit - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TryCommit - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TryCommit - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return domain.ErrSlotOccupied
	}

	return nil
}

// ListBookedTimes получает занятые слоты на дату, отсортированные по времени
func (r *Repository) ListBookedTimes(ctx context.Context, date types.DateString) ([]types.TimeString, error) {
	query, args, err := r.builder.Select("start_time").
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListBookedTimes - scan start_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// ListBookings получает бронирования за период (включительно)
// Сортировка по дате и времени (ASC) - для выгрузки
func (r *Repository) ListBookings(ctx context.Context, period domain.BookingsRange) ([]*domain.Booking, error) {
	query, args, err := r.builder.Select(
		"id",
		"booking_date",
		"start_time",
		"name",
		"email",
		"phone",
		"created_at",
	).
		From("bookings").
		Where(squirrel.GtOrEq{"booking_date": period.From}).
		Where(squirrel.LtOrEq{"booking_date": period.To}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Ping проверяет доступность базы данных
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt time.Time

		err := rows.Scan(
			&booking.ID,
			&booking.Date,
			&booking.Time,
			&booking.Name,
			&booking.Email,
			&booking.Phone,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.UTC()
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
