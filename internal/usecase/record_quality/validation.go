package record_quality

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	if req.PractitionerNotes != nil && len(*req.PractitionerNotes) > domain.MaxCommentLength {
		return fmt.Errorf("%w: practitionerNotes must be at most %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	return nil
}
