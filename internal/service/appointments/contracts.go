package appointments

import (
	"context"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей (только чтение)
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPractitionerAndDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	ListHistory(ctx context.Context, appointmentID int64) ([]*domain.StatusChange, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
