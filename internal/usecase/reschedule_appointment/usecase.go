package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HomeBookingService/pkg/txmanager"
)

const (
	operationName = "reschedule"
	maxAttempts   = 2
)

// UseCase use case переноса записи на другую дату или окно
type UseCase struct {
	appointmentRepo AppointmentRepository
	holdRepo        HoldRepository
	dayLockRepo     DayLockRepository
	dayLocker       DayLocker
	catalogClient   CatalogClient
	shiftResolver   ShiftResolver
	txManager       TransactionManager
	notifier        Notifier
	outcomes        OutcomeObserver
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	holdRepo HoldRepository,
	dayLockRepo DayLockRepository,
	dayLocker DayLocker,
	catalogClient CatalogClient,
	shiftResolver ShiftResolver,
	txManager TransactionManager,
	notifier Notifier,
	outcomes OutcomeObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		holdRepo:        holdRepo,
		dayLockRepo:     dayLockRepo,
		dayLocker:       dayLocker,
		catalogClient:   catalogClient,
		shiftResolver:   shiftResolver,
		txManager:       txManager,
		notifier:        notifier,
		outcomes:        outcomes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит запись. Новое окно проверяется по тем же правилам, что и при бронировании,
// без учёта самой переносимой записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, date=%s, window=%s-%s, actor=%s",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.Window.Start, req.Window.End, req.Actor)

	appointment, err := uc.execute(ctx, req)
	uc.observe(err)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(ctx, notifications.NewAppointmentEvent(
		notifications.EventAppointmentRescheduled, appointment, req.Actor, appointment.UpdatedAt))

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s %s-%s",
		appointment.ID, appointment.Date.Format(domain.DateFormat), appointment.WindowStart, appointment.WindowEnd)
	return appointment, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Текущее состояние записи
	current, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}
	if !current.Status.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d in status %s cannot be rescheduled", current.ID, current.Status)
		return nil, fmt.Errorf("%w: status %s", ErrNotReschedulable, current.Status)
	}

	// 3. Практикующий и его смена на новую дату
	practitioner, err := uc.catalogClient.GetPractitioner(ctx, current.PractitionerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPractitionerNotFound) {
			uc.logger.Warn("RescheduleAppointment: practitioner id=%d not found", current.PractitionerID)
			return nil, ErrPractitionerNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get practitioner id=%d: %v", current.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}
	if !practitioner.IsActive {
		uc.logger.Warn("RescheduleAppointment: practitioner id=%d is inactive", practitioner.ID)
		return nil, ErrPractitionerInactive
	}

	shift, err := uc.shiftResolver.EffectiveShift(ctx, practitioner, req.Date)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to resolve shift for practitioner=%d: %v", practitioner.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve shift: %v", ErrInternal, err)
	}

	// 4. Предварительная проверка нового окна
	if err := uc.checkWindow(ctx, current, req, shift, now, false); err != nil {
		return nil, err
	}

	// 5. Перенос под блокировкой нового дня
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		appointment, err := uc.reschedule(ctx, current, req, shift, now)
		if err == nil {
			return appointment, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
		uc.logger.Warn("RescheduleAppointment: attempt %d lost race for appointment=%d: %v", attempt, req.AppointmentID, err)
	}

	return nil, &domain.UnavailableError{
		Reason: domain.ReasonSlotOccupied,
		Cause:  fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, lastErr),
	}
}

func (uc *UseCase) reschedule(
	ctx context.Context,
	current *domain.Appointment,
	req *Request,
	shift *domain.Shift,
	now time.Time,
) (*domain.Appointment, error) {
	unlock, err := uc.dayLocker.LockDay(ctx, current.PractitionerID, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			return nil, err
		}
		uc.logger.Error("RescheduleAppointment: failed to lock day for practitioner=%d: %v", current.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to lock day: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, domain.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if err := uc.dayLockRepo.Acquire(txCtx, appointment.PractitionerID, req.Date); err != nil {
			return fmt.Errorf("%w: failed to acquire day lock: %w", ErrInternal, err)
		}

		if err := uc.checkWindow(txCtx, appointment, req, shift, now, true); err != nil {
			return err
		}

		change, err := appointment.Reschedule(req.Date, req.Window, req.Actor, now)
		if err != nil {
			return err
		}

		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appointment); err != nil {
			return fmt.Errorf("%w: failed to update schedule: %w", ErrInternal, err)
		}

		hold, err := domain.NewScheduleHold(appointment)
		if err != nil {
			return fmt.Errorf("%w: failed to build schedule hold: %v", ErrInternal, err)
		}
		if err := uc.holdRepo.Move(txCtx, hold); err != nil {
			return fmt.Errorf("%w: failed to move schedule hold: %w", ErrInternal, err)
		}

		if err := uc.appointmentRepo.AppendHistory(txCtx, change); err != nil {
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}

		result = appointment
		return nil
	})
	if err != nil {
		switch {
		case isRetryable(err), errors.Is(err, domain.ErrUnavailable):
		case errors.Is(err, domain.ErrInvalidStateTransition), errors.Is(err, domain.ErrAppointmentNotFound):
			uc.logger.Warn("RescheduleAppointment: appointment id=%d rejected: %v", req.AppointmentID, err)
		default:
			uc.logger.Error("RescheduleAppointment: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	return result, nil
}

// checkWindow проверяет новое окно по записям нового дня, исключая переносимую запись
func (uc *UseCase) checkWindow(
	ctx context.Context,
	appointment *domain.Appointment,
	req *Request,
	shift *domain.Shift,
	now time.Time,
	locked bool,
) error {
	appointments, err := uc.appointmentRepo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{
		PractitionerID: appointment.PractitionerID,
		Date:           req.Date,
	})
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to list appointments for practitioner=%d: %v", appointment.PractitionerID, err)
		return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}

	result, err := availability.Check(availability.DayInput{
		Date:                 req.Date,
		Shift:                *shift,
		Appointments:         appointments,
		DurationMinutes:      appointment.DurationMinutes,
		ClientCount:          appointment.ClientCount,
		Now:                  now,
		ExcludeAppointmentID: appointment.ID,
	}, req.Window)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("RescheduleAppointment: rejected input: %v", err)
			return err
		}
		return fmt.Errorf("%w: check failed: %v", ErrInternal, err)
	}
	if result.Available {
		return nil
	}

	reason := result.Reason
	if locked && lostRace(reason) {
		reason = domain.ReasonSlotOccupied
	}
	uc.logger.Info("RescheduleAppointment: window %s-%s unavailable for appointment=%d, reason=%s",
		req.Window.Start, req.Window.End, appointment.ID, reason)
	return domain.NewUnavailableError(reason)
}

func (uc *UseCase) observe(err error) {
	switch {
	case err == nil:
		uc.outcomes.ObserveBookingOutcome(operationName, "success", "")
	case errors.Is(err, domain.ErrUnavailable):
		reason, _ := domain.ReasonOf(err)
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", string(reason))
	case errors.Is(err, domain.ErrInvalidStateTransition):
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", "invalid_transition")
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAppointmentNotFound):
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", "validation")
	default:
		uc.outcomes.ObserveBookingOutcome(operationName, "error", "")
	}
}

func isRetryable(err error) bool {
	return errors.Is(err, domain.ErrConcurrencyConflict) || txmanager.IsSerializationFailure(err)
}
