package check_window

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Window.Start.IsZero() || req.Window.End.IsZero() {
		return fmt.Errorf("%w: window start and end are required", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if req.ClientCount < domain.MinClientCount || req.ClientCount > domain.MaxClientCount {
		return fmt.Errorf("%w: clients must be between %d and %d", ErrInvalidInput, domain.MinClientCount, domain.MaxClientCount)
	}
	return nil
}
