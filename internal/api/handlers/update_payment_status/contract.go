package update_payment_status

import (
	"context"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	updatePaymentStatus "github.com/m04kA/SMC-HomeBookingService/internal/usecase/update_payment_status"
)

type UpdatePaymentStatusUseCase interface {
	Execute(ctx context.Context, req *updatePaymentStatus.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
