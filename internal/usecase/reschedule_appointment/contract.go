package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPractitionerAndDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateSchedule(ctx context.Context, a *domain.Appointment) error
	AppendHistory(ctx context.Context, change *domain.StatusChange) error
}

// HoldRepository интерфейс репозитория меток занятости
type HoldRepository interface {
	Move(ctx context.Context, h *domain.ScheduleHold) error
}

// DayLockRepository блокировка дня практикующего внутри транзакции
type DayLockRepository interface {
	Acquire(ctx context.Context, practitionerID int64, date time.Time) error
}

// DayLocker блокировка дня практикующего до начала транзакции
type DayLocker interface {
	LockDay(ctx context.Context, practitionerID int64, date time.Time) (func(), error)
}

// CatalogClient интерфейс клиента каталога
type CatalogClient interface {
	GetPractitioner(ctx context.Context, practitionerID int64) (*domain.Practitioner, error)
}

// ShiftResolver вычисляет действующую смену практикующего на дату
type ShiftResolver interface {
	EffectiveShift(ctx context.Context, practitioner *domain.Practitioner, date time.Time) (*domain.Shift, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка событий без ожидания результата
type Notifier interface {
	Dispatch(ctx context.Context, event notifications.Event)
}

// OutcomeObserver учёт результатов операций с записями
type OutcomeObserver interface {
	ObserveBookingOutcome(operation, result, reason string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
