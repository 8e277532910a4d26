package update_practitioner_shift

import (
	"context"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts/models"
)

type ShiftService interface {
	UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*domain.Shift, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
