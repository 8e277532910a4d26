package daylock

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/txmanager"
)

var day = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func TestAcquire_RequiresTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	assert.ErrorIs(t, repo.Acquire(context.Background(), 7, day), ErrNoTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquire(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO practitioner_day_locks (practitioner_id,lock_date) VALUES ($1,$2) ON CONFLICT (practitioner_id, lock_date) DO NOTHING")).
		WithArgs(int64(7), "2026-06-15").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT practitioner_id FROM practitioner_day_locks WHERE lock_date = $1 AND practitioner_id = $2 FOR UPDATE")).
		WithArgs("2026-06-15", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"practitioner_id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	repo := NewRepository(db)
	tm := txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil))

	err = tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		return repo.Acquire(ctx, 7, day)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquire_LockNotAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO practitioner_day_locks")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnError(&pq.Error{Code: "55P03"})
	mock.ExpectRollback()

	repo := NewRepository(db)
	tm := txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil))

	err = tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		return repo.Acquire(ctx, 7, day)
	})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.ErrorIs(t, err, txmanager.ErrSerializationFailure)
	require.NoError(t, mock.ExpectationsWereMet())
}
