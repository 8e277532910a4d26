package appointment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/psqlbuilder"
)

const historyTable = "appointment_status_history"

// AppendHistory добавляет запись в журнал изменений.
// Вызывается в той же транзакции, что и само изменение.
func (r *Repository) AppendHistory(ctx context.Context, change *domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(historyTable).
		Columns("appointment_id", "kind", "from_value", "to_value", "actor", "comment", "changed_at").
		Values(change.AppointmentID, change.Kind, change.From, change.To, change.Actor, change.Comment, change.ChangedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&change.ID); err != nil {
		return fmt.Errorf("%w: AppendHistory - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListHistory получает журнал изменений записи в хронологическом порядке
func (r *Repository) ListHistory(ctx context.Context, appointmentID int64) ([]*domain.StatusChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "appointment_id", "kind", "from_value", "to_value", "actor", "comment", "changed_at").
		From(historyTable).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("changed_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	changes := make([]*domain.StatusChange, 0)
	for rows.Next() {
		var c domain.StatusChange
		var kind string
		if err := rows.Scan(&c.ID, &c.AppointmentID, &kind, &c.From, &c.To, &c.Actor, &c.Comment, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("%w: ListHistory - scan: %w", ErrScanRow, err)
		}
		c.Kind = domain.ChangeKind(kind)
		changes = append(changes, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHistory - rows error: %w", ErrScanRow, err)
	}

	return changes, nil
}
