package transition_appointment

import "github.com/m04kA/SMC-HomeBookingService/internal/domain"

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID int64
	Target        domain.AppointmentStatus
	Actor         string
	Comment       *string // для отмены сохраняется как причина
}
