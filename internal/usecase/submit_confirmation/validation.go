package submit_confirmation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ContactPhone) == "" {
		return fmt.Errorf("%w: contact phone is required", ErrInvalidInput)
	}
	for name, v := range map[string]*string{
		"entranceNotes": req.EntranceNotes,
		"parkingNotes":  req.ParkingNotes,
		"petNotes":      req.PetNotes,
		"oilPreference": req.OilPreference,
	} {
		if v != nil && len(*v) > domain.MaxNotesLength {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, name, domain.MaxNotesLength)
		}
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	return nil
}

func acceptsDetails(status domain.AppointmentStatus) bool {
	return status == domain.StatusNew || status == domain.StatusConfirming
}
