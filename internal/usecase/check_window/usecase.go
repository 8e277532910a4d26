package check_window

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/availability"
)

// UseCase use case проверки одного окна прибытия без бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogClient
	shiftResolver   ShiftResolver
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogClient,
	shiftResolver ShiftResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		shiftResolver:   shiftResolver,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проверяет окно по тем же правилам, что и расчёт дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.WindowAvailability, error) {
	uc.logger.Info("CheckWindow: practitioner=%d, date=%s, window=%s-%s, duration=%d, clients=%d",
		req.PractitionerID, req.Date.Format(domain.DateFormat), req.Window.Start, req.Window.End,
		req.DurationMinutes, req.ClientCount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckWindow: validation failed: %v", err)
		return nil, err
	}

	practitioner, err := uc.catalogClient.GetPractitioner(ctx, req.PractitionerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPractitionerNotFound) {
			uc.logger.Warn("CheckWindow: practitioner id=%d not found", req.PractitionerID)
			return nil, ErrPractitionerNotFound
		}
		uc.logger.Error("CheckWindow: failed to get practitioner id=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	shift, err := uc.shiftResolver.EffectiveShift(ctx, practitioner, req.Date)
	if err != nil {
		uc.logger.Error("CheckWindow: failed to resolve shift for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to resolve shift: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
	})
	if err != nil {
		uc.logger.Error("CheckWindow: failed to list appointments for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	result, err := availability.Check(availability.DayInput{
		Date:            req.Date,
		Shift:           *shift,
		Appointments:    appointments,
		DurationMinutes: req.DurationMinutes,
		ClientCount:     req.ClientCount,
		Now:             uc.timeProvider.Now(),
	}, req.Window)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("CheckWindow: rejected input: %v", err)
			return nil, err
		}
		uc.logger.Error("CheckWindow: check failed for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: check failed: %v", ErrInternal, err)
	}

	if !result.Available {
		uc.logger.Info("CheckWindow: window %s-%s unavailable, reason=%s", req.Window.Start, req.Window.End, result.Reason)
	}
	return &result, nil
}
