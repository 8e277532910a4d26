package record_quality

import (
	"context"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	recordQuality "github.com/m04kA/SMC-HomeBookingService/internal/usecase/record_quality"
)

type RecordQualityUseCase interface {
	Execute(ctx context.Context, req *recordQuality.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
