package get_availability

import (
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	computeAvailability "github.com/m04kA/SMC-HomeBookingService/internal/usecase/compute_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PractitionerID int64            `json:"practitionerId"`
	Date           string           `json:"date"`
	ShiftStart     *string          `json:"shiftStart,omitempty"`
	ShiftEnd       *string          `json:"shiftEnd,omitempty"`
	DayOff         bool             `json:"dayOff"`
	Windows        []WindowResponse `json:"windows"`
}

// WindowResponse окно прибытия с доступностью
type WindowResponse struct {
	WindowStart        string `json:"windowStart"`
	WindowEnd          string `json:"windowEnd"`
	Available          bool   `json:"available"`
	Reason             string `json:"reason,omitempty"`
	AvailableDurations []int  `json:"availableDurations"`
}

// FromWindow конвертирует доменное окно в HTTP модель
func FromWindow(w domain.WindowAvailability) WindowResponse {
	durations := w.AvailableDurations
	if durations == nil {
		durations = []int{}
	}
	return WindowResponse{
		WindowStart:        w.Window.Start.String(),
		WindowEnd:          w.Window.End.String(),
		Available:          w.Available,
		Reason:             string(w.Reason),
		AvailableDurations: durations,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computeAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		PractitionerID: resp.PractitionerID,
		Date:           resp.Date.Format(domain.DateFormat),
		DayOff:         !resp.Shift.IsWorking(),
		Windows:        make([]WindowResponse, 0, len(resp.Windows)),
	}
	if resp.Shift.IsWorking() {
		start, end := resp.Shift.Start.String(), resp.Shift.End.String()
		out.ShiftStart = &start
		out.ShiftEnd = &end
	}
	for _, w := range resp.Windows {
		out.Windows = append(out.Windows, FromWindow(w))
	}
	return out
}
