package domain

import "github.com/m04kA/SMC-HomeBookingService/pkg/types"

// UnavailableReason machine-readable reason a window cannot be booked
type UnavailableReason string

const (
	ReasonTooSoon              UnavailableReason = "too_soon"
	ReasonExceedsShift         UnavailableReason = "exceeds_shift"
	ReasonSlotOccupied         UnavailableReason = "slot_occupied"
	ReasonConflictWithPrevious UnavailableReason = "conflict_with_previous"
	ReasonConflictWithNext     UnavailableReason = "conflict_with_next"
	ReasonDurationNotAvailable UnavailableReason = "duration_not_available"
)

// ArrivalWindow is a 30-minute range within which the practitioner commits to arrive
type ArrivalWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// WindowAvailability is one candidate window of a day
type WindowAvailability struct {
	Window             ArrivalWindow
	Available          bool
	Reason             UnavailableReason // empty when Available
	AvailableDurations []int             // subset of StandardDurations that fit this window
}
