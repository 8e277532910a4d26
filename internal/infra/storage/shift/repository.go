package shift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

const table = "practitioner_shift_overrides"

var overrideColumns = []string{
	"id",
	"practitioner_id",
	"shift_date",
	"start_time",
	"end_time",
	"day_off",
	"note",
	"updated_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий переопределений смен практикующих
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByPractitionerAndDate получает переопределение смены на дату
func (r *Repository) GetByPractitionerAndDate(ctx context.Context, practitionerID int64, date time.Time) (*domain.ShiftOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From(table).
		Where(squirrel.Eq{
			"practitioner_id": practitionerID,
			"shift_date":      date.Format(domain.DateFormat),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerAndDate - scan override: %w", ErrScanRow, err)
	}

	return o, nil
}

// ListByPractitioner получает переопределения смен практикующего в диапазоне дат включительно
func (r *Repository) ListByPractitioner(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.ShiftOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From(table).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.GtOrEq{"shift_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"shift_date": to.Format(domain.DateFormat)}).
		OrderBy("shift_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPractitioner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPractitioner - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.ShiftOverride, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByPractitioner - scan override: %w", ErrScanRow, err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPractitioner - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

// Upsert создает или заменяет переопределение смены на дату
func (r *Repository) Upsert(ctx context.Context, o *domain.ShiftOverride) (*domain.ShiftOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("practitioner_id", "shift_date", "start_time", "end_time", "day_off", "note", "updated_by").
		Values(
			o.PractitionerID,
			o.Date.Format(domain.DateFormat),
			o.Start,
			o.End,
			o.DayOff,
			o.Note,
			o.UpdatedBy,
		).
		Suffix(`ON CONFLICT (practitioner_id, shift_date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			day_off = EXCLUDED.day_off,
			note = EXCLUDED.note,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// Delete удаляет переопределение, возвращая практикующему смену по умолчанию
func (r *Repository) Delete(ctx context.Context, practitionerID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{
			"practitioner_id": practitionerID,
			"shift_date":      date.Format(domain.DateFormat),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.ShiftOverride, error) {
	var o domain.ShiftOverride
	var start, end sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&o.ID,
		&o.PractitionerID,
		&o.Date,
		&start,
		&end,
		&o.DayOff,
		&o.Note,
		&o.UpdatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if o.Start, err = parseNullTime(start); err != nil {
		return nil, err
	}
	if o.End, err = parseNullTime(end); err != nil {
		return nil, err
	}
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

func parseNullTime(s sql.NullString) (*types.TimeString, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
