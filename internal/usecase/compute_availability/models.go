package compute_availability

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// Request модель запроса доступных окон прибытия
type Request struct {
	PractitionerID  int64
	Date            time.Time // полночь даты в часовом поясе расписания
	DurationMinutes int
	ClientCount     int
}

// Response окна прибытия практикующего на дату
type Response struct {
	PractitionerID int64
	Date           time.Time
	Shift          domain.Shift
	Windows        []domain.WindowAvailability
}
