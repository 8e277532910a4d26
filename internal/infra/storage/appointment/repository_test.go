package appointment

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/ptr"
)

var day = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), db, mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(appointmentColumns)
}

func addAppointmentRow(rows *sqlmock.Rows, id int64, start, end, status string) *sqlmock.Rows {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, int64(7), int64(3), 60, day, start+":00", end+":00", status, "not_paid", nil,
		1, "medium", "Ivan", "+79001234567", nil, "Lenina 1",
		"Classic", 3500.0, nil, nil, nil, nil, nil, nil, now, now,
	)
}

func TestCreate(t *testing.T) {
	repo, _, mock := newRepo(t)
	created := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WithArgs(int64(7), int64(3), 60, "2026-06-15", "10:00", "10:30", "new", "not_paid",
			1, "medium", "Ivan", "+79001234567", nil, "Lenina 1", "Classic", 3500.0, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), created, created))

	a, err := repo.Create(context.Background(), &domain.Appointment{
		PractitionerID:  7,
		ServiceID:       3,
		DurationMinutes: 60,
		Date:            day,
		WindowStart:     "10:00",
		WindowEnd:       "10:30",
		Status:          domain.StatusNew,
		PaymentStatus:   domain.PaymentNotPaid,
		ClientCount:     1,
		PressureLevel:   "medium",
		Client:          domain.ClientInfo{Name: "Ivan", Phone: "+79001234567", Address: "Lenina 1"},
		ServiceName:     "Classic",
		ServicePrice:    3500,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), a.ID)
	assert.Equal(t, created, a.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUpdate_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM appointments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(11)).
		WillReturnRows(addAppointmentRow(appointmentRows(), 11, "10:00", "10:30", "confirming"))
	mock.ExpectQuery(`SELECT .* FROM appointment_confirmations WHERE appointment_id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"address", "entrance_notes", "floor", "parking_notes", "has_pets",
			"pet_notes", "table_needed", "oil_preference", "contact_phone", "submitted_by", "submitted_at"}).
			AddRow("Lenina 1", nil, "3", nil, true, "cat", false, nil, "+79001234567", "15", day))
	mock.ExpectQuery(`SELECT .* FROM appointment_quality WHERE appointment_id = \$1`).
		WithArgs(int64(11)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	a, err := repo.GetByIDForUpdate(ctx, 11)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, domain.StatusConfirming, a.Status)
	assert.Equal(t, "10:00", a.WindowStart.String())
	require.NotNil(t, a.Confirmation)
	assert.True(t, a.Confirmation.HasPets)
	assert.Equal(t, "3", *a.Confirmation.Floor)
	assert.Nil(t, a.Quality)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM appointments WHERE id = \$1$`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByPractitionerAndDate(t *testing.T) {
	repo, _, mock := newRepo(t)

	rows := appointmentRows()
	addAppointmentRow(rows, 1, "10:00", "10:30", "new")
	addAppointmentRow(rows, 2, "14:00", "14:30", "confirmed")

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM appointments WHERE appointment_date = $1 AND practitioner_id = $2 AND status <> $3 ORDER BY window_start ASC, id ASC")).
		WithArgs("2026-06-15", int64(7), "cancelled").
		WillReturnRows(rows)

	list, err := repo.ListByPractitionerAndDate(context.Background(), domain.AppointmentsFilter{PractitionerID: 7, Date: day})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.StatusConfirmed, list[1].Status)
	assert.Equal(t, "14:30", list[1].WindowEnd.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByPractitionerAndDate_IncludeCancelled(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM appointments WHERE appointment_date = $1 AND practitioner_id = $2 ORDER BY")).
		WithArgs("2026-06-15", int64(7)).
		WillReturnRows(addAppointmentRow(appointmentRows(), 1, "10:00", "10:30", "cancelled"))

	list, err := repo.ListByPractitionerAndDate(context.Background(),
		domain.AppointmentsFilter{PractitionerID: 7, Date: day, IncludeCancelled: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsActive())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	a := &domain.Appointment{ID: 11, Status: domain.StatusCancelled, CancelledBy: ptr.Ptr("15"),
		CancelledAt: &now, CancellationReason: ptr.Ptr("sick"), UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE appointments SET cancellation_reason = $1, cancelled_at = $2, cancelled_by = $3, confirmed_at = $4, confirmed_by = $5, status = $6, updated_at = $7 WHERE id = $8")).
		WithArgs("sick", now, "15", nil, nil, "cancelled", now, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSchedule_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET appointment_date = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSchedule(context.Background(), &domain.Appointment{ID: 5, Date: day, WindowStart: "11:00", WindowEnd: "11:30"})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendAndListHistory(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointment_status_history")).
		WithArgs(int64(11), "status", "new", "confirming", "15", nil, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))

	change := &domain.StatusChange{AppointmentID: 11, Kind: domain.ChangeKindStatus, From: "new", To: "confirming", Actor: "15", ChangedAt: now}
	require.NoError(t, repo.AppendHistory(context.Background(), change))
	assert.Equal(t, int64(100), change.ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointment_status_history WHERE appointment_id = $1 ORDER BY changed_at ASC, id ASC")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "appointment_id", "kind", "from_value", "to_value", "actor", "comment", "changed_at"}).
			AddRow(int64(99), int64(11), "created", "", "new", "15", nil, now).
			AddRow(int64(100), int64(11), "status", "new", "confirming", "15", nil, now))

	history, err := repo.ListHistory(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ChangeKindCreated, history[0].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertQuality(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO appointment_quality .* ON CONFLICT \(appointment_id\) DO UPDATE`).
		WithArgs(int64(11), 5, "great", nil, "15", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertQuality(context.Background(), 11, &domain.QualityRecord{Rating: 5, Comment: ptr.Ptr("great"), RecordedBy: "15", RecordedAt: now})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
