package record_quality

import (
	recordQuality "github.com/m04kA/SMC-HomeBookingService/internal/usecase/record_quality"
)

// QualityRequest HTTP request model
type QualityRequest struct {
	Rating            int     `json:"rating"` // 1..5
	Comment           *string `json:"comment,omitempty"`
	PractitionerNotes *string `json:"practitionerNotes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QualityRequest) ToUseCaseRequest(appointmentID int64, actor string) *recordQuality.Request {
	return &recordQuality.Request{
		AppointmentID:     appointmentID,
		Rating:            r.Rating,
		Comment:           r.Comment,
		PractitionerNotes: r.PractitionerNotes,
		Actor:             actor,
	}
}
