package reserve_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Window.Start.IsZero() || req.Window.End.IsZero() {
		return fmt.Errorf("%w: window start and end are required", ErrInvalidInput)
	}
	if req.ClientCount < domain.MinClientCount || req.ClientCount > domain.MaxClientCount {
		return fmt.Errorf("%w: clients must be between %d and %d", ErrInvalidInput, domain.MinClientCount, domain.MaxClientCount)
	}
	if strings.TrimSpace(req.Client.Name) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Client.Phone) == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Client.Address) == "" {
		return fmt.Errorf("%w: client address is required", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	return nil
}

// validateCatalog проверяет выбор услуги по данным каталога
func validateCatalog(req *Request, practitioner *domain.Practitioner, service *domain.ServiceOffering) (domain.DurationVariant, error) {
	if !practitioner.IsActive {
		return domain.DurationVariant{}, ErrPractitionerInactive
	}
	if !service.IsActive {
		return domain.DurationVariant{}, ErrServiceInactive
	}
	if !practitioner.SupportsService(service.ID) {
		return domain.DurationVariant{}, ErrServiceNotSupported
	}
	if req.PressureLevel != "" && !practitioner.SupportsPressure(req.PressureLevel) {
		return domain.DurationVariant{}, ErrPressureNotSupported
	}
	variant, ok := service.FindVariant(req.DurationMinutes)
	if !ok {
		return domain.DurationVariant{}, ErrDurationNotOffered
	}
	return variant, nil
}

// lostRace сообщает, что окно заняли между предварительной проверкой и блокировкой
func lostRace(reason domain.UnavailableReason) bool {
	switch reason {
	case domain.ReasonSlotOccupied, domain.ReasonConflictWithPrevious, domain.ReasonConflictWithNext:
		return true
	default:
		return false
	}
}
