package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/appointments/models"
)

// Service сервис чтения записей на визит
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись вместе с журналом изменений
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	history, err := s.appointmentRepo.ListHistory(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to load history for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - history error: %v", ErrInternal, err)
	}

	resp := models.FromDomainAppointment(appointment)
	resp.History = models.FromDomainHistory(history)
	return resp, nil
}

// ListByPractitioner получает записи практикующего на дату по возрастанию окна прибытия
func (s *Service) ListByPractitioner(ctx context.Context, practitionerID int64, date time.Time, includeCancelled bool) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByPractitioner: practitioner=%d, date=%s, includeCancelled=%t",
		practitionerID, date.Format(domain.DateFormat), includeCancelled)

	if practitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{
		PractitionerID:   practitionerID,
		Date:             date,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		s.logger.Error("ListByPractitioner: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: ListByPractitioner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByPractitioner: found %d appointments for practitioner=%d", len(appointments), practitionerID)
	return models.FromDomainAppointmentList(appointments), nil
}
