package reschedule_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Window.Start.IsZero() || req.Window.End.IsZero() {
		return fmt.Errorf("%w: window start and end are required", ErrInvalidInput)
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	return nil
}

func lostRace(reason domain.UnavailableReason) bool {
	switch reason {
	case domain.ReasonSlotOccupied, domain.ReasonConflictWithPrevious, domain.ReasonConflictWithNext:
		return true
	default:
		return false
	}
}
