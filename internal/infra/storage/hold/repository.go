package hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/psqlbuilder"
)

const (
	table = "schedule_holds"

	codeUniqueViolation = "23505"
)

// Repository репозиторий меток занятости расписания.
// Уникальный индекс по (practitioner_id, hold_date, window_start) среди активных меток
// не даёт двум записям занять одно окно даже при обходе блокировки дня.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меток
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Hold ставит метку занятости для записи
func (r *Repository) Hold(ctx context.Context, h *domain.ScheduleHold) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"appointment_id",
			"practitioner_id",
			"hold_date",
			"window_start",
			"window_end",
			"busy_from",
			"busy_until",
		).
		Values(
			h.AppointmentID,
			h.PractitionerID,
			h.Date.Format(domain.DateFormat),
			h.WindowStart,
			h.WindowEnd,
			h.BusyFrom,
			h.BusyUntil,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Hold - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: practitioner %d, %s %s", ErrWindowTaken, h.PractitionerID, h.Date.Format(domain.DateFormat), h.WindowStart)
		}
		return fmt.Errorf("%w: Hold - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Release снимает активную метку записи. Отсутствие метки не считается ошибкой.
func (r *Repository) Release(ctx context.Context, appointmentID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("released_at", at).
		Where(squirrel.Eq{"appointment_id": appointmentID, "released_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// Move переносит активную метку записи на новые дату и окно
func (r *Repository) Move(ctx context.Context, h *domain.ScheduleHold) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(map[string]interface{}{
			"hold_date":    h.Date.Format(domain.DateFormat),
			"window_start": h.WindowStart,
			"window_end":   h.WindowEnd,
			"busy_from":    h.BusyFrom,
			"busy_until":   h.BusyUntil,
		}).
		Where(squirrel.Eq{"appointment_id": h.AppointmentID, "released_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Move - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: practitioner %d, %s %s", ErrWindowTaken, h.PractitionerID, h.Date.Format(domain.DateFormat), h.WindowStart)
		}
		return fmt.Errorf("%w: Move - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Move - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}
