package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/psqlbuilder"
)

const table = "appointments"

var appointmentColumns = []string{
	"id",
	"practitioner_id",
	"service_id",
	"duration_minutes",
	"appointment_date",
	"window_start",
	"window_end",
	"status",
	"payment_status",
	"payment_ref",
	"client_count",
	"pressure_level",
	"client_name",
	"client_phone",
	"client_email",
	"client_address",
	"service_name",
	"service_price",
	"notes",
	"confirmed_by",
	"confirmed_at",
	"cancelled_by",
	"cancelled_at",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на визит
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Вызывается внутри сериализуемой транзакции бронирования, транзакция берётся из контекста.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"practitioner_id",
			"service_id",
			"duration_minutes",
			"appointment_date",
			"window_start",
			"window_end",
			"status",
			"payment_status",
			"client_count",
			"pressure_level",
			"client_name",
			"client_phone",
			"client_email",
			"client_address",
			"service_name",
			"service_price",
			"notes",
		).
		Values(
			a.PractitionerID,
			a.ServiceID,
			a.DurationMinutes,
			a.Date.Format(domain.DateFormat),
			a.WindowStart,
			a.WindowEnd,
			a.Status,
			a.PaymentStatus,
			a.ClientCount,
			a.PressureLevel,
			a.Client.Name,
			a.Client.Phone,
			a.Client.Email,
			a.Client.Address,
			a.ServiceName,
			a.ServicePrice,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID вместе с деталями подтверждения и отзывом
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает запись и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	if a.Confirmation, err = r.getConfirmation(ctx, id); err != nil {
		return nil, err
	}
	if a.Quality, err = r.getQuality(ctx, id); err != nil {
		return nil, err
	}

	return a, nil
}

// ListByPractitionerAndDate получает записи практикующего на дату, отсортированные по окну прибытия.
// Отменённые записи исключаются, если не задан IncludeCancelled.
func (r *Repository) ListByPractitionerAndDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(table).
		Where(squirrel.Eq{
			"practitioner_id":  filter.PractitionerID,
			"appointment_date": filter.Date.Format(domain.DateFormat),
		}).
		OrderBy("window_start ASC", "id ASC")

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled.String()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPractitionerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPractitionerAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByPractitionerAndDate - scan appointment: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPractitionerAndDate - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus сохраняет статус и отметки подтверждения/отмены
func (r *Repository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	return r.update(ctx, "UpdateStatus", a.ID, map[string]interface{}{
		"status":              a.Status,
		"confirmed_by":        a.ConfirmedBy,
		"confirmed_at":        a.ConfirmedAt,
		"cancelled_by":        a.CancelledBy,
		"cancelled_at":        a.CancelledAt,
		"cancellation_reason": a.CancellationReason,
		"updated_at":          a.UpdatedAt,
	})
}

// UpdatePayment сохраняет статус оплаты
func (r *Repository) UpdatePayment(ctx context.Context, a *domain.Appointment) error {
	return r.update(ctx, "UpdatePayment", a.ID, map[string]interface{}{
		"payment_status": a.PaymentStatus,
		"payment_ref":    a.PaymentRef,
		"updated_at":     a.UpdatedAt,
	})
}

// UpdateSchedule сохраняет новую дату и окно прибытия
func (r *Repository) UpdateSchedule(ctx context.Context, a *domain.Appointment) error {
	return r.update(ctx, "UpdateSchedule", a.ID, map[string]interface{}{
		"appointment_date": a.Date.Format(domain.DateFormat),
		"window_start":     a.WindowStart,
		"window_end":       a.WindowEnd,
		"updated_at":       a.UpdatedAt,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.PractitionerID,
		&a.ServiceID,
		&a.DurationMinutes,
		&a.Date,
		&a.WindowStart,
		&a.WindowEnd,
		&a.Status,
		&a.PaymentStatus,
		&a.PaymentRef,
		&a.ClientCount,
		&a.PressureLevel,
		&a.Client.Name,
		&a.Client.Phone,
		&a.Client.Email,
		&a.Client.Address,
		&a.ServiceName,
		&a.ServicePrice,
		&a.Notes,
		&a.ConfirmedBy,
		&a.ConfirmedAt,
		&a.CancelledBy,
		&a.CancelledAt,
		&a.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
