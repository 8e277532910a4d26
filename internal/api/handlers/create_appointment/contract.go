package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	reserveAppointment "github.com/m04kA/SMC-HomeBookingService/internal/usecase/reserve_appointment"
)

type ReserveAppointmentUseCase interface {
	Execute(ctx context.Context, req *reserveAppointment.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
