package update_payment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
)

// UseCase use case обработки статусов оплаты от платёжного провайдера
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

// Execute меняет статус оплаты записи.
// Повторное уведомление с тем же статусом ничего не меняет.
// Если запись ждёт в CONFIRMING с заполненными деталями и оплата прошла, запись подтверждается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("UpdatePaymentStatus: appointment=%d, status=%s, actor=%s", req.AppointmentID, req.Status, req.Actor)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdatePaymentStatus: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result        *domain.Appointment
		paymentMoved  bool
		autoConfirmed bool
	)
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, domain.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if appointment.PaymentStatus == req.Status {
			result = appointment
			return nil
		}

		change, err := appointment.ChangePayment(req.Status, req.Actor, req.ExternalRef, now)
		if err != nil {
			return err
		}
		if err := uc.appointmentRepo.UpdatePayment(txCtx, appointment); err != nil {
			return fmt.Errorf("%w: failed to update payment: %w", ErrInternal, err)
		}
		if err := uc.appointmentRepo.AppendHistory(txCtx, change); err != nil {
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}
		paymentMoved = true

		confirm, err := appointment.AutoConfirm(now)
		if err != nil {
			return err
		}
		if confirm != nil {
			if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment); err != nil {
				return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
			}
			if err := uc.appointmentRepo.AppendHistory(txCtx, confirm); err != nil {
				return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
			}
			autoConfirmed = true
		}

		result = appointment
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			uc.logger.Warn("UpdatePaymentStatus: appointment id=%d not found", req.AppointmentID)
		case errors.Is(err, domain.ErrInvalidStateTransition):
			uc.logger.Warn("UpdatePaymentStatus: appointment id=%d rejected: %v", req.AppointmentID, err)
		default:
			uc.logger.Error("UpdatePaymentStatus: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	if !paymentMoved {
		uc.logger.Info("UpdatePaymentStatus: appointment id=%d already %s", result.ID, result.PaymentStatus)
		return result, nil
	}

	uc.notifier.Dispatch(ctx, notifications.NewAppointmentEvent(
		notifications.EventAppointmentPaymentChanged, result, req.Actor, now))
	if autoConfirmed {
		uc.logger.Info("UpdatePaymentStatus: appointment id=%d confirmed automatically", result.ID)
		uc.notifier.Dispatch(ctx, notifications.NewAppointmentEvent(
			notifications.EventAppointmentStatusChanged, result, domain.SystemActor, now))
	}

	return result, nil
}
