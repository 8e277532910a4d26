package models

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// UpsertOverrideRequest запрос на переопределение смены на дату
type UpsertOverrideRequest struct {
	PractitionerID int64
	Date           time.Time
	Start          *types.TimeString
	End            *types.TimeString
	DayOff         bool
	Note           *string
	Actor          string
}

// ShiftResponse действующая смена практикующего на дату
type ShiftResponse struct {
	PractitionerID int64   `json:"practitionerId"`
	Date           string  `json:"date"`
	Start          *string `json:"start,omitempty"`
	End            *string `json:"end,omitempty"`
	DayOff         bool    `json:"dayOff"`
	Source         string  `json:"source"`
}

// FromDomainShift конвертирует смену в ответ
func FromDomainShift(s *domain.Shift) *ShiftResponse {
	resp := &ShiftResponse{
		PractitionerID: s.PractitionerID,
		Date:           s.Date.Format(domain.DateFormat),
		DayOff:         s.DayOff,
		Source:         string(s.Source),
	}
	if !s.DayOff {
		start, end := s.Start.String(), s.End.String()
		resp.Start = &start
		resp.End = &end
	}
	return resp
}
