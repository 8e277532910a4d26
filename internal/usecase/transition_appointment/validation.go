package transition_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if !req.Target.IsValid() {
		return fmt.Errorf("%w: unknown target status", ErrInvalidInput)
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if req.Comment != nil {
		limit := domain.MaxCommentLength
		if req.Target == domain.StatusCancelled {
			limit = domain.MaxCancellationReasonLength
		}
		if len(*req.Comment) > limit {
			return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, limit)
		}
	}
	return nil
}
