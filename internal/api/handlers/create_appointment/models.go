package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	reserveAppointment "github.com/m04kA/SMC-HomeBookingService/internal/usecase/reserve_appointment"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PractitionerID  int64         `json:"practitionerId"`
	ServiceID       int64         `json:"serviceId"`
	DurationMinutes int           `json:"durationMinutes"`
	Date            string        `json:"date"`        // "2026-06-15"
	WindowStart     string        `json:"windowStart"` // "10:00"
	WindowEnd       string        `json:"windowEnd"`   // "10:30"
	ClientCount     int           `json:"clientCount"`
	PressureLevel   string        `json:"pressureLevel,omitempty"`
	Client          ClientRequest `json:"client"`
	Notes           *string       `json:"notes,omitempty"`
}

// ClientRequest контактные данные клиента
type ClientRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Address string  `json:"address"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(loc *time.Location, actor string) (*reserveAppointment.Request, error) {
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

	clientCount := r.ClientCount
	if clientCount == 0 {
		clientCount = 1
	}

	return &reserveAppointment.Request{
		PractitionerID:  r.PractitionerID,
		ServiceID:       r.ServiceID,
		DurationMinutes: r.DurationMinutes,
		Date:            date,
		Window:          domain.ArrivalWindow{Start: windowStart, End: windowEnd},
		ClientCount:     clientCount,
		PressureLevel:   r.PressureLevel,
		Client: domain.ClientInfo{
			Name:    r.Client.Name,
			Phone:   r.Client.Phone,
			Email:   r.Client.Email,
			Address: r.Client.Address,
		},
		Notes: r.Notes,
		Actor: actor,
	}, nil
}
