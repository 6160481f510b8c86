package blackout

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// DBExecutor интерфейс для работы с БД
type DBExecutor = dbmetrics.DBExecutor

const schema = `CREATE TABLE IF NOT EXISTS blackout_dates (
	blackout_date TEXT PRIMARY KEY,
	created_at    TIMESTAMP NOT NULL
)`

// Repository репозиторий выходных дней, назначенных администратором
type Repository struct {
	db      DBExecutor
	builder *sqlbuilder.Builder
	now     func() time.Time
}

// NewRepository создает новый экземпляр репозитория выходных дней
func NewRepository(db DBExecutor, builder *sqlbuilder.Builder) *Repository {
	return &Repository{db: db, builder: builder, now: time.Now}
}

// Migrate создает таблицу blackout_dates, если её ещё нет
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: blackout_dates: %v", ErrMigrate, err)
	}
	return nil
}

// IsBlackout проверяет, отмечена ли дата как выходной
func (r *Repository) IsBlackout(ctx context.Context, date types.DateString) (bool, error) {
	query, args, err := r.builder.Select("COUNT(*)").
		From("blackout_dates").
		Where(squirrel.Eq{"blackout_date": date}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsBlackout - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsBlackout - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// SetBlackout идемпотентно добавляет или удаляет выходной день
// Повторная установка не создаёт дубликатов (ON CONFLICT DO NOTHING),
// снятие несуществующего выходного - не ошибка
func (r *Repository) SetBlackout(ctx context.Context, date types.DateString, isBlackout bool) error {
	var (
		query string
		args  []interface{}
		err   error
	)

	if isBlackout {
		query, args, err = r.builder.Insert("blackout_dates").
			Columns("blackout_date", "created_at").
			Values(date, r.now().UTC()).
			Suffix("ON CONFLICT (blackout_date) DO NOTHING").
			ToSql()
	} else {
		query, args, err = r.builder.Delete("blackout_dates").
			Where(squirrel.Eq{"blackout_date": date}).
			ToSql()
	}

	if err != nil {
		return fmt.Errorf("%w: SetBlackout - build query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetBlackout - execute: %v", ErrExecQuery, err)
	}

	return nil
}

// ListBlackouts получает все выходные дни по возрастанию даты
func (r *Repository) ListBlackouts(ctx context.Context) ([]types.DateString, error) {
	query, args, err := r.builder.Select("blackout_date").
		From("blackout_dates").
		OrderBy("blackout_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackouts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackouts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]types.DateString, 0)
	for rows.Next() {
		var d types.DateString
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: ListBlackouts - scan blackout_date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlackouts - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}
