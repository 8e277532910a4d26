package submit_confirmation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
)

// UseCase use case приема деталей визита
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute сохраняет детали визита. Новая запись переходит в CONFIRMING,
// а оплаченная запись подтверждается автоматически.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("SubmitConfirmation: appointment=%d, actor=%s", req.AppointmentID, req.Actor)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitConfirmation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	details := &domain.ConfirmationDetails{
		Address:       req.Address,
		EntranceNotes: req.EntranceNotes,
		Floor:         req.Floor,
		ParkingNotes:  req.ParkingNotes,
		HasPets:       req.HasPets,
		PetNotes:      req.PetNotes,
		TableNeeded:   req.TableNeeded,
		OilPreference: req.OilPreference,
		ContactPhone:  req.ContactPhone,
		SubmittedBy:   req.Actor,
		SubmittedAt:   now,
	}

	var (
		result     *domain.Appointment
		prevStatus domain.AppointmentStatus
	)
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, domain.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}
		if !acceptsDetails(appointment.Status) {
			return fmt.Errorf("%w: status %s", ErrNotAccepting, appointment.Status)
		}
		prevStatus = appointment.Status

		if err := uc.appointmentRepo.UpsertConfirmation(txCtx, appointment.ID, details); err != nil {
			return fmt.Errorf("%w: failed to save confirmation: %w", ErrInternal, err)
		}
		appointment.Confirmation = details

		var changes []*domain.StatusChange
		if appointment.Status == domain.StatusNew {
			change, err := appointment.TransitionTo(domain.StatusConfirming, req.Actor, nil, now)
			if err != nil {
				return err
			}
			changes = append(changes, change)
		}

		change, err := appointment.AutoConfirm(now)
		if err != nil {
			return err
		}
		if change != nil {
			changes = append(changes, change)
		}

		if len(changes) == 0 {
			result = appointment
			return nil
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment); err != nil {
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}
		for _, c := range changes {
			if err := uc.appointmentRepo.AppendHistory(txCtx, c); err != nil {
				return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
			}
		}

		result = appointment
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			uc.logger.Warn("SubmitConfirmation: appointment id=%d not found", req.AppointmentID)
		case errors.Is(err, domain.ErrInvalidStateTransition):
			uc.logger.Warn("SubmitConfirmation: appointment id=%d rejected: %v", req.AppointmentID, err)
		default:
			uc.logger.Error("SubmitConfirmation: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	if result.Status != prevStatus {
		uc.notifier.Dispatch(ctx, notifications.NewAppointmentEvent(
			notifications.EventAppointmentStatusChanged, result, req.Actor, now))
	}

	uc.logger.Info("SubmitConfirmation: appointment id=%d details saved, status=%s", result.ID, result.Status)
	return result, nil
}
