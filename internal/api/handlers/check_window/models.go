package check_window

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	checkWindow "github.com/m04kA/SMC-HomeBookingService/internal/usecase/check_window"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// CheckWindowResponse HTTP response model
type CheckWindowResponse struct {
	WindowStart        string `json:"windowStart"`
	WindowEnd          string `json:"windowEnd"`
	Available          bool   `json:"available"`
	Reason             string `json:"reason,omitempty"`
	Message            string `json:"message,omitempty"`
	AvailableDurations []int  `json:"availableDurations"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(practitionerID int64, date time.Time, start, end string, duration, clients int) (*checkWindow.Request, error) {
	windowStart, err := types.NewTimeStringFromString(start)
	if err != nil {
		return nil, err
	}
	windowEnd, err := types.NewTimeStringFromString(end)
	if err != nil {
		return nil, err
	}

	return &checkWindow.Request{
		PractitionerID:  practitionerID,
		Date:            date,
		Window:          domain.ArrivalWindow{Start: windowStart, End: windowEnd},
		DurationMinutes: duration,
		ClientCount:     clients,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(w *domain.WindowAvailability) *CheckWindowResponse {
	resp := &CheckWindowResponse{
		WindowStart:        w.Window.Start.String(),
		WindowEnd:          w.Window.End.String(),
		Available:          w.Available,
		Reason:             string(w.Reason),
		AvailableDurations: w.AvailableDurations,
	}
	if resp.AvailableDurations == nil {
		resp.AvailableDurations = []int{}
	}
	if !w.Available {
		resp.Message = handlers.UnavailableMessage(w.Reason)
	}
	return resp
}
