package submit_confirmation

import (
	"context"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	submitConfirmation "github.com/m04kA/SMC-HomeBookingService/internal/usecase/submit_confirmation"
)

type SubmitConfirmationUseCase interface {
	Execute(ctx context.Context, req *submitConfirmation.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
