package record_quality

// Request модель отзыва о визите
type Request struct {
	AppointmentID     int64
	Rating            int
	Comment           *string
	PractitionerNotes *string
	Actor             string
}
