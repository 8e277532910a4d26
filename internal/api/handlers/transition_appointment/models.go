package transition_appointment

import (
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-HomeBookingService/internal/usecase/transition_appointment"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status  string  `json:"status"` // "confirmed", "cancelled", ...
	Comment *string `json:"comment,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(appointmentID int64, actor string) (*transitionAppointment.Request, error) {
	target, err := domain.ParseAppointmentStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return &transitionAppointment.Request{
		AppointmentID: appointmentID,
		Target:        target,
		Actor:         actor,
		Comment:       r.Comment,
	}, nil
}
