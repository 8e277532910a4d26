package reserve_appointment

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// Request модель запроса на бронирование визита
type Request struct {
	PractitionerID  int64
	ServiceID       int64
	DurationMinutes int
	Date            time.Time // полночь даты в часовом поясе расписания
	Window          domain.ArrivalWindow
	ClientCount     int
	PressureLevel   string // пусто, если клиент не выбрал
	Client          domain.ClientInfo
	Notes           *string
	Actor           string
}
