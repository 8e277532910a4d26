package transition_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-HomeBookingService/pkg/txmanager"
)

const (
	operationName = "transition"
	maxAttempts   = 2
)

// UseCase use case смены статуса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	holdRepo        HoldRepository
	dayLockRepo     DayLockRepository
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
	txManager TransactionManager,
	notifier Notifier,
	outcomes OutcomeObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		holdRepo:        holdRepo,
		dayLockRepo:     dayLockRepo,
		txManager:       txManager,
		notifier:        notifier,
		outcomes:        outcomes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит запись в новый статус по конечному автомату.
// Отмена снимает метку занятости, и окно сразу становится доступным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("TransitionAppointment: appointment=%d, target=%s, actor=%s", req.AppointmentID, req.Target, req.Actor)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		uc.observe(err)
		return nil, err
	}

	var (
		result *domain.Appointment
		err    error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err = uc.transition(ctx, req)
		if err == nil || !txmanager.IsSerializationFailure(err) {
			break
		}
		uc.logger.Warn("TransitionAppointment: attempt %d lost race for appointment=%d: %v", attempt, req.AppointmentID, err)
		err = fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, err)
	}
	uc.observe(err)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(ctx, notifications.NewAppointmentEvent(
		notifications.EventAppointmentStatusChanged, result, req.Actor, result.UpdatedAt))

	uc.logger.Info("TransitionAppointment: appointment id=%d is now %s", result.ID, result.Status)
	return result, nil
}

func (uc *UseCase) transition(ctx context.Context, req *Request) (*domain.Appointment, error) {
	now := uc.timeProvider.Now()

	var result *domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, domain.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		cancelling := req.Target == domain.StatusCancelled
		if cancelling {
			if err := uc.dayLockRepo.Acquire(txCtx, appointment.PractitionerID, appointment.Date); err != nil {
				return fmt.Errorf("%w: failed to acquire day lock: %w", ErrInternal, err)
			}
		}

		change, err := appointment.TransitionTo(req.Target, req.Actor, req.Comment, now)
		if err != nil {
			return err
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment); err != nil {
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		if cancelling {
			if err := uc.holdRepo.Release(txCtx, appointment.ID, now); err != nil {
				return fmt.Errorf("%w: failed to release schedule hold: %w", ErrInternal, err)
			}
		}

		if err := uc.appointmentRepo.AppendHistory(txCtx, change); err != nil {
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}

		result = appointment
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			uc.logger.Warn("TransitionAppointment: appointment id=%d not found", req.AppointmentID)
		case errors.Is(err, domain.ErrInvalidStateTransition), errors.Is(err, domain.ErrPaymentRequired):
			uc.logger.Warn("TransitionAppointment: appointment id=%d rejected: %v", req.AppointmentID, err)
		case txmanager.IsSerializationFailure(err):
		default:
			uc.logger.Error("TransitionAppointment: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	return result, nil
}

func (uc *UseCase) observe(err error) {
	switch {
	case err == nil:
		uc.outcomes.ObserveBookingOutcome(operationName, "success", "")
	case errors.Is(err, domain.ErrPaymentRequired):
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", "payment_required")
	case errors.Is(err, domain.ErrInvalidStateTransition):
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", "invalid_transition")
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAppointmentNotFound):
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", "validation")
	default:
		uc.outcomes.ObserveBookingOutcome(operationName, "error", "")
	}
}
