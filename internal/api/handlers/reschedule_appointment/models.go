package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-HomeBookingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date        string `json:"date"`        // "2026-06-16"
	WindowStart string `json:"windowStart"` // "15:00"
	WindowEnd   string `json:"windowEnd"`   // "15:30"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID int64, loc *time.Location, actor string) (*rescheduleAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}
	windowStart, err := types.NewTimeStringFromString(r.WindowStart)
	if err != nil {
		return nil, err
	}
	windowEnd, err := types.NewTimeStringFromString(r.WindowEnd)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		Window:        domain.ArrivalWindow{Start: windowStart, End: windowEnd},
		Actor:         actor,
	}, nil
}
