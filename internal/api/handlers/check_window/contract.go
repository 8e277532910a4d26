package check_window

import (
	"context"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	checkWindow "github.com/m04kA/SMC-HomeBookingService/internal/usecase/check_window"
)

type CheckWindowUseCase interface {
	Execute(ctx context.Context, req *checkWindow.Request) (*domain.WindowAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
