package shifts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// ShiftRepository интерфейс репозитория переопределений смен
type ShiftRepository interface {
	GetByPractitionerAndDate(ctx context.Context, practitionerID int64, date time.Time) (*domain.ShiftOverride, error)
	ListByPractitioner(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.ShiftOverride, error)
	Upsert(ctx context.Context, o *domain.ShiftOverride) (*domain.ShiftOverride, error)
	Delete(ctx context.Context, practitionerID int64, date time.Time) error
}

// CatalogClient интерфейс клиента каталога практикующих
type CatalogClient interface {
	GetPractitioner(ctx context.Context, practitionerID int64) (*domain.Practitioner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
