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

const (
	confirmationsTable = "appointment_confirmations"
	qualityTable       = "appointment_quality"
)

// UpsertConfirmation сохраняет детали подтверждения (одна строка на запись)
func (r *Repository) UpsertConfirmation(ctx context.Context, appointmentID int64, d *domain.ConfirmationDetails) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(confirmationsTable).
		Columns(
			"appointment_id",
			"address",
			"entrance_notes",
			"floor",
			"parking_notes",
			"has_pets",
			"pet_notes",
			"table_needed",
			"oil_preference",
			"contact_phone",
			"submitted_by",
			"submitted_at",
		).
		Values(
			appointmentID,
			d.Address,
			d.EntranceNotes,
			d.Floor,
			d.ParkingNotes,
			d.HasPets,
			d.PetNotes,
			d.TableNeeded,
			d.OilPreference,
			d.ContactPhone,
			d.SubmittedBy,
			d.SubmittedAt,
		).
		Suffix(`ON CONFLICT (appointment_id) DO UPDATE SET
			address = EXCLUDED.address,
			entrance_notes = EXCLUDED.entrance_notes,
			floor = EXCLUDED.floor,
			parking_notes = EXCLUDED.parking_notes,
			has_pets = EXCLUDED.has_pets,
			pet_notes = EXCLUDED.pet_notes,
			table_needed = EXCLUDED.table_needed,
			oil_preference = EXCLUDED.oil_preference,
			contact_phone = EXCLUDED.contact_phone,
			submitted_by = EXCLUDED.submitted_by,
			submitted_at = EXCLUDED.submitted_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertConfirmation - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertConfirmation - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// UpsertQuality сохраняет отзыв о визите
func (r *Repository) UpsertQuality(ctx context.Context, appointmentID int64, q *domain.QualityRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(qualityTable).
		Columns("appointment_id", "rating", "comment", "practitioner_notes", "recorded_by", "recorded_at").
		Values(appointmentID, q.Rating, q.Comment, q.PractitionerNotes, q.RecordedBy, q.RecordedAt).
		Suffix(`ON CONFLICT (appointment_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			comment = EXCLUDED.comment,
			practitioner_notes = EXCLUDED.practitioner_notes,
			recorded_by = EXCLUDED.recorded_by,
			recorded_at = EXCLUDED.recorded_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertQuality - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertQuality - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getConfirmation(ctx context.Context, appointmentID int64) (*domain.ConfirmationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"address",
		"entrance_notes",
		"floor",
		"parking_notes",
		"has_pets",
		"pet_notes",
		"table_needed",
		"oil_preference",
		"contact_phone",
		"submitted_by",
		"submitted_at",
	).
		From(confirmationsTable).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getConfirmation - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.ConfirmationDetails
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.Address,
		&d.EntranceNotes,
		&d.Floor,
		&d.ParkingNotes,
		&d.HasPets,
		&d.PetNotes,
		&d.TableNeeded,
		&d.OilPreference,
		&d.ContactPhone,
		&d.SubmittedBy,
		&d.SubmittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getConfirmation - scan: %w", ErrScanRow, err)
	}

	return &d, nil
}

func (r *Repository) getQuality(ctx context.Context, appointmentID int64) (*domain.QualityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating", "comment", "practitioner_notes", "recorded_by", "recorded_at").
		From(qualityTable).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getQuality - build select query: %v", ErrBuildQuery, err)
	}

	var q domain.QualityRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&q.Rating,
		&q.Comment,
		&q.PractitionerNotes,
		&q.RecordedBy,
		&q.RecordedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getQuality - scan: %w", ErrScanRow, err)
	}

	return &q, nil
}
