package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/shift"
	catalogClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts/models"
)

// Service сервис смен практикующих.
// Действующая смена на дату: переопределение на эту дату, иначе смена по умолчанию из каталога.
type Service struct {
	shiftRepo     ShiftRepository
	catalogClient CatalogClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса смен
func NewService(shiftRepo ShiftRepository, catalogClient CatalogClient, logger Logger) *Service {
	return &Service{
		shiftRepo:     shiftRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// GetShift получает действующую смену практикующего на дату
func (s *Service) GetShift(ctx context.Context, practitionerID int64, date time.Time) (*domain.Shift, error) {
	practitioner, err := s.getPractitioner(ctx, "GetShift", practitionerID)
	if err != nil {
		return nil, err
	}
	return s.EffectiveShift(ctx, practitioner, date)
}

// EffectiveShift вычисляет действующую смену для уже полученного практикующего.
// Неактивный практикующий не работает ни в один день.
func (s *Service) EffectiveShift(ctx context.Context, practitioner *domain.Practitioner, date time.Time) (*domain.Shift, error) {
	shift := &domain.Shift{
		PractitionerID: practitioner.ID,
		Date:           date,
		Start:          practitioner.ShiftStart,
		End:            practitioner.ShiftEnd,
		DayOff:         !practitioner.IsActive,
		Source:         domain.ShiftSourceDefault,
	}
	if !practitioner.IsActive {
		return shift, nil
	}

	override, err := s.shiftRepo.GetByPractitionerAndDate(ctx, practitioner.ID, date)
	if errors.Is(err, shiftRepo.ErrOverrideNotFound) {
		return shift, nil
	}
	if err != nil {
		s.logger.Error("EffectiveShift: failed to get override for practitioner=%d, date=%s: %v",
			practitioner.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: EffectiveShift - repository error: %v", ErrInternal, err)
	}

	shift.Source = domain.ShiftSourceOverride
	shift.DayOff = override.DayOff
	if override.DayOff {
		shift.Start, shift.End = "", ""
		return shift, nil
	}
	shift.Start, shift.End = *override.Start, *override.End
	return shift, nil
}

// ListOverrides получает переопределения смен в диапазоне дат включительно
func (s *Service) ListOverrides(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.ShiftOverride, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidInput)
	}

	overrides, err := s.shiftRepo.ListByPractitioner(ctx, practitionerID, from, to)
	if err != nil {
		s.logger.Error("ListOverrides: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %v", ErrInternal, err)
	}
	return overrides, nil
}

// UpsertOverride задает смену практикующего на конкретную дату
func (s *Service) UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*domain.Shift, error) {
	s.logger.Info("UpsertOverride: practitioner=%d, date=%s, dayOff=%t by actor=%s",
		req.PractitionerID, req.Date.Format(domain.DateFormat), req.DayOff, req.Actor)

	if err := validateOverride(req); err != nil {
		s.logger.Warn("UpsertOverride: validation failed: %v", err)
		return nil, err
	}

	practitioner, err := s.getPractitioner(ctx, "UpsertOverride", req.PractitionerID)
	if err != nil {
		return nil, err
	}

	override := &domain.ShiftOverride{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
		DayOff:         req.DayOff,
		Note:           req.Note,
		UpdatedBy:      req.Actor,
	}
	if !req.DayOff {
		override.Start, override.End = req.Start, req.End
	}

	if _, err := s.shiftRepo.Upsert(ctx, override); err != nil {
		s.logger.Error("UpsertOverride: repository error for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertOverride: override saved for practitioner=%d, date=%s",
		req.PractitionerID, req.Date.Format(domain.DateFormat))
	return s.EffectiveShift(ctx, practitioner, req.Date)
}

// DeleteOverride возвращает практикующему смену по умолчанию на дату
func (s *Service) DeleteOverride(ctx context.Context, practitionerID int64, date time.Time, actor string) error {
	s.logger.Info("DeleteOverride: practitioner=%d, date=%s by actor=%s", practitionerID, date.Format(domain.DateFormat), actor)

	err := s.shiftRepo.Delete(ctx, practitionerID, date)
	if errors.Is(err, shiftRepo.ErrOverrideNotFound) {
		return ErrOverrideNotFound
	}
	if err != nil {
		s.logger.Error("DeleteOverride: repository error for practitioner=%d: %v", practitionerID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) getPractitioner(ctx context.Context, op string, practitionerID int64) (*domain.Practitioner, error) {
	practitioner, err := s.catalogClient.GetPractitioner(ctx, practitionerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPractitionerNotFound) {
			s.logger.Warn("%s: practitioner id=%d not found", op, practitionerID)
			return nil, ErrPractitionerNotFound
		}
		s.logger.Error("%s: failed to get practitioner id=%d: %v", op, practitionerID, err)
		return nil, fmt.Errorf("%w: %s - failed to get practitioner: %v", ErrInternal, op, err)
	}
	return practitioner, nil
}

func validateOverride(req *models.UpsertOverrideRequest) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if req.DayOff {
		return nil
	}
	if req.Start == nil || req.End == nil {
		return fmt.Errorf("%w: start and end are required unless dayOff", ErrInvalidInput)
	}
	if err := req.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start: %v", ErrInvalidInput, err)
	}
	if err := req.End.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end: %v", ErrInvalidInput, err)
	}
	if !req.Start.IsBefore(*req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	return nil
}
