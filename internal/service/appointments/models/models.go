package models

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// AppointmentResponse ответ с данными записи на визит
type AppointmentResponse struct {
	ID                 int64                 `json:"id"`
	PractitionerID     int64                 `json:"practitionerId"`
	ServiceID          int64                 `json:"serviceId"`
	DurationMinutes    int                   `json:"durationMinutes"`
	Date               string                `json:"date"`        // "2026-06-15"
	WindowStart        string                `json:"windowStart"` // "10:00"
	WindowEnd          string                `json:"windowEnd"`   // "10:30"
	Status             string                `json:"status"`
	PaymentStatus      string                `json:"paymentStatus"`
	PaymentRef         *string               `json:"paymentRef,omitempty"`
	ClientCount        int                   `json:"clientCount"`
	PressureLevel      string                `json:"pressureLevel,omitempty"`
	Client             ClientResponse        `json:"client"`
	ServiceName        string                `json:"serviceName"`
	ServicePrice       float64               `json:"servicePrice"`
	Notes              *string               `json:"notes,omitempty"`
	ConfirmedBy        *string               `json:"confirmedBy,omitempty"`
	ConfirmedAt        *string               `json:"confirmedAt,omitempty"`
	CancelledBy        *string               `json:"cancelledBy,omitempty"`
	CancelledAt        *string               `json:"cancelledAt,omitempty"`
	CancellationReason *string               `json:"cancellationReason,omitempty"`
	Confirmation       *ConfirmationResponse `json:"confirmation,omitempty"`
	Quality            *QualityResponse      `json:"quality,omitempty"`
	History            []HistoryEntry        `json:"history,omitempty"`
	CreatedAt          string                `json:"createdAt"`
	UpdatedAt          string                `json:"updatedAt"`
}

// ClientResponse контактные данные клиента
type ClientResponse struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Address string  `json:"address"`
}

// ConfirmationResponse детали подтверждения визита
type ConfirmationResponse struct {
	Address       string  `json:"address"`
	EntranceNotes *string `json:"entranceNotes,omitempty"`
	Floor         *string `json:"floor,omitempty"`
	ParkingNotes  *string `json:"parkingNotes,omitempty"`
	HasPets       bool    `json:"hasPets"`
	PetNotes      *string `json:"petNotes,omitempty"`
	TableNeeded   bool    `json:"tableNeeded"`
	OilPreference *string `json:"oilPreference,omitempty"`
	ContactPhone  string  `json:"contactPhone"`
	SubmittedBy   string  `json:"submittedBy"`
	SubmittedAt   string  `json:"submittedAt"`
}

// QualityResponse отзыв о визите
type QualityResponse struct {
	Rating            int     `json:"rating"`
	Comment           *string `json:"comment,omitempty"`
	PractitionerNotes *string `json:"practitionerNotes,omitempty"`
	RecordedBy        string  `json:"recordedBy"`
	RecordedAt        string  `json:"recordedAt"`
}

// HistoryEntry запись журнала изменений
type HistoryEntry struct {
	Kind      string  `json:"kind"`
	From      string  `json:"from,omitempty"`
	To        string  `json:"to"`
	Actor     string  `json:"actor"`
	Comment   *string `json:"comment,omitempty"`
	ChangedAt string  `json:"changedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует запись в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              a.ID,
		PractitionerID:  a.PractitionerID,
		ServiceID:       a.ServiceID,
		DurationMinutes: a.DurationMinutes,
		Date:            a.Date.Format(domain.DateFormat),
		WindowStart:     a.WindowStart.String(),
		WindowEnd:       a.WindowEnd.String(),
		Status:          a.Status.String(),
		PaymentStatus:   a.PaymentStatus.String(),
		PaymentRef:      a.PaymentRef,
		ClientCount:     a.ClientCount,
		PressureLevel:   a.PressureLevel,
		Client: ClientResponse{
			Name:    a.Client.Name,
			Phone:   a.Client.Phone,
			Email:   a.Client.Email,
			Address: a.Client.Address,
		},
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		ConfirmedBy:        a.ConfirmedBy,
		ConfirmedAt:        formatOptional(a.ConfirmedAt),
		CancelledBy:        a.CancelledBy,
		CancelledAt:        formatOptional(a.CancelledAt),
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}

	if d := a.Confirmation; d != nil {
		resp.Confirmation = &ConfirmationResponse{
			Address:       d.Address,
			EntranceNotes: d.EntranceNotes,
			Floor:         d.Floor,
			ParkingNotes:  d.ParkingNotes,
			HasPets:       d.HasPets,
			PetNotes:      d.PetNotes,
			TableNeeded:   d.TableNeeded,
			OilPreference: d.OilPreference,
			ContactPhone:  d.ContactPhone,
			SubmittedBy:   d.SubmittedBy,
			SubmittedAt:   d.SubmittedAt.Format(time.RFC3339),
		}
	}
	if q := a.Quality; q != nil {
		resp.Quality = &QualityResponse{
			Rating:            q.Rating,
			Comment:           q.Comment,
			PractitionerNotes: q.PractitionerNotes,
			RecordedBy:        q.RecordedBy,
			RecordedAt:        q.RecordedAt.Format(time.RFC3339),
		}
	}

	return resp
}

// FromDomainAppointmentList конвертирует список записей в ответ
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]*AppointmentResponse, 0, len(appointments)),
		Total:        len(appointments),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, FromDomainAppointment(a))
	}
	return resp
}

// FromDomainHistory конвертирует журнал изменений
func FromDomainHistory(changes []*domain.StatusChange) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(changes))
	for _, c := range changes {
		out = append(out, HistoryEntry{
			Kind:      string(c.Kind),
			From:      c.From,
			To:        c.To,
			Actor:     c.Actor,
			Comment:   c.Comment,
			ChangedAt: c.ChangedAt.Format(time.RFC3339),
		})
	}
	return out
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
