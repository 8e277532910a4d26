package record_quality

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// UseCase use case записи отзыва о завершённом визите
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute сохраняет отзыв. Повторный вызов заменяет предыдущий отзыв.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("RecordQuality: appointment=%d, rating=%d, actor=%s", req.AppointmentID, req.Rating, req.Actor)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordQuality: validation failed: %v", err)
		return nil, err
	}

	record := &domain.QualityRecord{
		Rating:            req.Rating,
		Comment:           req.Comment,
		PractitionerNotes: req.PractitionerNotes,
		RecordedBy:        req.Actor,
		RecordedAt:        uc.timeProvider.Now(),
	}

	var result *domain.Appointment
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, domain.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}
		if appointment.Status != domain.StatusCompleted {
			return fmt.Errorf("%w: status %s", ErrNotCompleted, appointment.Status)
		}

		if err := uc.appointmentRepo.UpsertQuality(txCtx, appointment.ID, record); err != nil {
			return fmt.Errorf("%w: failed to save quality: %w", ErrInternal, err)
		}

		appointment.Quality = record
		result = appointment
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			uc.logger.Warn("RecordQuality: appointment id=%d not found", req.AppointmentID)
		case errors.Is(err, domain.ErrInvalidStateTransition):
			uc.logger.Warn("RecordQuality: appointment id=%d rejected: %v", req.AppointmentID, err)
		default:
			uc.logger.Error("RecordQuality: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	return result, nil
}
