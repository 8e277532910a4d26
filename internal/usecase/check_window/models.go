package check_window

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// Request модель запроса проверки одного окна прибытия
type Request struct {
	PractitionerID  int64
	Date            time.Time
	Window          domain.ArrivalWindow
	DurationMinutes int
	ClientCount     int
}
