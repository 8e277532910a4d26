package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/config"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/appointment"
	dayLockRepo "github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/daylock"
	holdRepo "github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/migrator"
	shiftRepo "github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/shift"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
	"github.com/m04kA/SMC-HomeBookingService/pkg/txmanager"
)

type appointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPractitionerAndDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, a *domain.Appointment) error
	UpdatePayment(ctx context.Context, a *domain.Appointment) error
	UpdateSchedule(ctx context.Context, a *domain.Appointment) error
	UpsertConfirmation(ctx context.Context, appointmentID int64, d *domain.ConfirmationDetails) error
	UpsertQuality(ctx context.Context, appointmentID int64, q *domain.QualityRecord) error
	AppendHistory(ctx context.Context, change *domain.StatusChange) error
	ListHistory(ctx context.Context, appointmentID int64) ([]*domain.StatusChange, error)
}

type holdStore interface {
	Hold(ctx context.Context, h *domain.ScheduleHold) error
	Release(ctx context.Context, appointmentID int64, at time.Time) error
	Move(ctx context.Context, h *domain.ScheduleHold) error
}

type dayLockStore interface {
	Acquire(ctx context.Context, practitionerID int64, date time.Time) error
}

type shiftStore interface {
	GetByPractitionerAndDate(ctx context.Context, practitionerID int64, date time.Time) (*domain.ShiftOverride, error)
	ListByPractitioner(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.ShiftOverride, error)
	Upsert(ctx context.Context, o *domain.ShiftOverride) (*domain.ShiftOverride, error)
	Delete(ctx context.Context, practitionerID int64, date time.Time) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type dayLocker interface {
	LockDay(ctx context.Context, practitionerID int64, date time.Time) (func(), error)
}

// storage репозитории выбранного драйвера хранилища
type storage struct {
	appointments appointmentStore
	holds        holdStore
	dayLocks     dayLockStore
	shifts       shiftStore
	tx           txManager
	// locker блокировка дня внутри процесса; для postgres её заменяет строка practitioner_day_locks
	locker dayLocker
	close  func() error
}

// openStorage подключает хранилище по database.driver
func openStorage(ctx context.Context, cfg *config.Config, observer dbmetrics.Observer, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Info("Using in-memory storage")
		return &storage{
			appointments: memory.NewAppointmentRepository(store),
			holds:        memory.NewHoldRepository(store),
			dayLocks:     memory.NewDayLockRepository(),
			shifts:       memory.NewShiftRepository(store),
			tx:           memory.NewTxManager(store),
			locker:       lock.NewLocal(),
			close:        func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, log)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init migrator: %w", err)
		}
		if err := m.Up(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, observer, stopCh)
	if observer != nil {
		log.Info("Database metrics collection started")
	}

	return &storage{
		appointments: appointmentRepo.NewRepository(wrappedDB),
		holds:        holdRepo.NewRepository(wrappedDB),
		dayLocks:     dayLockRepo.NewRepository(wrappedDB),
		shifts:       shiftRepo.NewRepository(wrappedDB),
		tx:           txmanager.NewTransactionManager(wrappedDB),
		locker:       lock.Noop{},
		close:        db.Close,
	}, nil
}
