package get_practitioner_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByPractitioner(ctx context.Context, practitionerID int64, date time.Time, includeCancelled bool) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
