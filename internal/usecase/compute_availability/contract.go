package compute_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByPractitionerAndDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CatalogClient интерфейс клиента каталога
type CatalogClient interface {
	GetPractitioner(ctx context.Context, practitionerID int64) (*domain.Practitioner, error)
}

// ShiftResolver вычисляет действующую смену практикующего на дату
type ShiftResolver interface {
	EffectiveShift(ctx context.Context, practitioner *domain.Practitioner, date time.Time) (*domain.Shift, error)
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
