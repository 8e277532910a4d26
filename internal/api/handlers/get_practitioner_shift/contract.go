package get_practitioner_shift

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

type ShiftService interface {
	GetShift(ctx context.Context, practitionerID int64, date time.Time) (*domain.Shift, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
