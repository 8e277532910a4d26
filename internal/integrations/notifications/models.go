package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// EventType тип события об изменении записи
type EventType string

const (
	EventAppointmentCreated        EventType = "appointment.created"
	EventAppointmentStatusChanged  EventType = "appointment.status_changed"
	EventAppointmentRescheduled    EventType = "appointment.rescheduled"
	EventAppointmentPaymentChanged EventType = "appointment.payment_changed"
)

// Event событие для сервиса доставки уведомлений
type Event struct {
	ID             string    `json:"event_id"`
	Type           EventType `json:"event_type"`
	AppointmentID  int64     `json:"appointment_id"`
	PractitionerID int64     `json:"practitioner_id"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	Date           string    `json:"date"`
	WindowStart    string    `json:"window_start"`
	WindowEnd      string    `json:"window_end"`
	ClientPhone    string    `json:"client_phone"`
	Actor          string    `json:"actor"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewAppointmentEvent создает событие по текущему состоянию записи
func NewAppointmentEvent(eventType EventType, a *domain.Appointment, actor string, at time.Time) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		AppointmentID:  a.ID,
		PractitionerID: a.PractitionerID,
		Status:         a.Status.String(),
		PaymentStatus:  a.PaymentStatus.String(),
		Date:           a.Date.Format(domain.DateFormat),
		WindowStart:    a.WindowStart.String(),
		WindowEnd:      a.WindowEnd.String(),
		ClientPhone:    a.Client.Phone,
		Actor:          actor,
		OccurredAt:     at.UTC(),
	}
}
