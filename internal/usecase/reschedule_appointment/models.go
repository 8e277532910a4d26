package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	Date          time.Time
	Window        domain.ArrivalWindow
	Actor         string
}
