package daylock

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/psqlbuilder"
)

const table = "practitioner_day_locks"

// Repository блокировка дня практикующего на уровне строки БД.
// Строка создаётся при первом обращении, затем берётся через SELECT ... FOR UPDATE
// и удерживается до конца текущей транзакции.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок дня
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Acquire блокирует день практикующего до завершения транзакции из контекста
func (r *Repository) Acquire(ctx context.Context, practitionerID int64, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	insertQuery, insertArgs, err := psqlbuilder.Insert(table).
		Columns("practitioner_id", "lock_date").
		Values(practitionerID, day).
		Suffix("ON CONFLICT (practitioner_id, lock_date) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Acquire - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: Acquire - ensure lock row: %w", ErrExecQuery, err)
	}

	selectQuery, selectArgs, err := psqlbuilder.Select("practitioner_id").
		From(table).
		Where(squirrel.Eq{"practitioner_id": practitionerID, "lock_date": day}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Acquire - build select query: %v", ErrBuildQuery, err)
	}

	var locked int64
	if err := executor.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&locked); err != nil {
		return fmt.Errorf("%w: Acquire - lock row: %w", ErrExecQuery, err)
	}

	return nil
}
