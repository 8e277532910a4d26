package domain

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// Practitioner is read-only reference data resolved from the catalog
type Practitioner struct {
	ID             int64
	Name           string
	IsActive       bool
	ShiftStart     types.TimeString
	ShiftEnd       types.TimeString
	ServiceIDs     []int64
	PressureLevels []string
}

// SupportsService reports whether the practitioner performs the service
func (p *Practitioner) SupportsService(serviceID int64) bool {
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// SupportsPressure reports whether the practitioner works with the pressure level.
// An empty level means "no preference".
func (p *Practitioner) SupportsPressure(level string) bool {
	if level == "" {
		return true
	}
	for _, l := range p.PressureLevels {
		if l == level {
			return true
		}
	}
	return false
}

// ShiftSource tells where an effective shift came from
type ShiftSource string

const (
	ShiftSourceDefault  ShiftSource = "default"
	ShiftSourceOverride ShiftSource = "override"
)

// Shift is the effective working interval of a practitioner on a date
type Shift struct {
	PractitionerID int64
	Date           time.Time
	Start          types.TimeString
	End            types.TimeString
	DayOff         bool
	Source         ShiftSource
}

// IsWorking reports whether the practitioner accepts visits on this shift
func (s *Shift) IsWorking() bool {
	return !s.DayOff && !s.Start.IsZero() && !s.End.IsZero() && s.Start.IsBefore(s.End)
}

// ShiftOverride replaces the practitioner's default shift on one date
type ShiftOverride struct {
	ID             int64
	PractitionerID int64
	Date           time.Time
	Start          *types.TimeString // nil when DayOff
	End            *types.TimeString
	DayOff         bool
	Note           *string
	UpdatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
