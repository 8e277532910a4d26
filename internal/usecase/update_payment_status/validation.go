package update_payment_status

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

const maxExternalRefLength = 255

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown payment status", ErrInvalidInput)
	}
	if req.Status == domain.PaymentNotPaid {
		return fmt.Errorf("%w: payment cannot return to %s", ErrInvalidInput, domain.PaymentNotPaid)
	}
	if req.ExternalRef != nil && len(*req.ExternalRef) > maxExternalRefLength {
		return fmt.Errorf("%w: externalRef must be at most %d characters", ErrInvalidInput, maxExternalRefLength)
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	return nil
}
