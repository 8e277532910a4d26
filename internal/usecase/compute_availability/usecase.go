package compute_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/availability"
)

// UseCase use case расчёта окон прибытия на день
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

// Execute возвращает все окна смены по порядку с пометкой доступности.
// Выходной или неактивный практикующий дают пустой список.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeAvailability: practitioner=%d, date=%s, duration=%d, clients=%d",
		req.PractitionerID, req.Date.Format(domain.DateFormat), req.DurationMinutes, req.ClientCount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputeAvailability: validation failed: %v", err)
		return nil, err
	}

	practitioner, err := uc.catalogClient.GetPractitioner(ctx, req.PractitionerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPractitionerNotFound) {
			uc.logger.Warn("ComputeAvailability: practitioner id=%d not found", req.PractitionerID)
			return nil, ErrPractitionerNotFound
		}
		uc.logger.Error("ComputeAvailability: failed to get practitioner id=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	shift, err := uc.shiftResolver.EffectiveShift(ctx, practitioner, req.Date)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to resolve shift for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to resolve shift: %v", ErrInternal, err)
	}

	resp := &Response{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
		Shift:          *shift,
		Windows:        []domain.WindowAvailability{},
	}
	if !shift.IsWorking() {
		uc.logger.Info("ComputeAvailability: practitioner=%d does not work on %s", req.PractitionerID, req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	appointments, err := uc.appointmentRepo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
	})
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to list appointments for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	windows, err := availability.Compute(availability.DayInput{
		Date:            req.Date,
		Shift:           *shift,
		Appointments:    appointments,
		DurationMinutes: req.DurationMinutes,
		ClientCount:     req.ClientCount,
		Now:             uc.timeProvider.Now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("ComputeAvailability: rejected input: %v", err)
			return nil, err
		}
		uc.logger.Error("ComputeAvailability: calculation failed for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: calculation failed: %v", ErrInternal, err)
	}
	resp.Windows = windows

	available := 0
	for _, w := range windows {
		if w.Available {
			available++
		}
	}
	uc.logger.Info("ComputeAvailability: practitioner=%d, date=%s: %d of %d windows available",
		req.PractitionerID, req.Date.Format(domain.DateFormat), available, len(windows))

	return resp, nil
}
