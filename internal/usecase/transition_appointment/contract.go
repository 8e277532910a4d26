package transition_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, a *domain.Appointment) error
	AppendHistory(ctx context.Context, change *domain.StatusChange) error
}

// HoldRepository интерфейс репозитория меток занятости
type HoldRepository interface {
	Release(ctx context.Context, appointmentID int64, at time.Time) error
}

// DayLockRepository блокировка дня практикующего внутри транзакции
type DayLockRepository interface {
	Acquire(ctx context.Context, practitionerID int64, date time.Time) error
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
