package availability

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// interval is a half-open range of minutes from the start of the day
type interval struct {
	start int
	end   int
}

func (i interval) overlaps(o interval) bool {
	return i.start < o.end && i.end > o.start
}

// bookedVisit is an existing appointment reduced to the intervals the detector needs
type bookedVisit struct {
	appointmentID int64
	arrival       interval
	busy          interval // [arrival.start - travel, visit end + post)
}

func (b bookedVisit) readyToLeave() int {
	return b.busy.end
}

func newBookedVisit(a *domain.Appointment) (bookedVisit, error) {
	start, err := a.WindowStart.Minutes()
	if err != nil {
		return bookedVisit{}, fmt.Errorf("%w: appointment id=%d window start: %v", ErrInvalidInput, a.ID, err)
	}
	end, err := a.WindowEnd.Minutes()
	if err != nil {
		return bookedVisit{}, fmt.Errorf("%w: appointment id=%d window end: %v", ErrInvalidInput, a.ID, err)
	}

	return bookedVisit{
		appointmentID: a.ID,
		arrival:       interval{start: start, end: end},
		busy: interval{
			start: start - domain.TravelMinutes,
			end:   end + domain.VisitCore(a.DurationMinutes, a.ClientCount),
		},
	}, nil
}

// detectConflict checks a candidate arrival window against the day's booked visits.
// visitCore is the candidate's own setup+massage+teardown time.
func detectConflict(window interval, visitCore int, booked []bookedVisit) domain.UnavailableReason {
	for _, b := range booked {
		if window.overlaps(b.arrival) {
			return domain.ReasonSlotOccupied
		}
	}

	// earlier visits: the practitioner must be free and travelled before the window closes
	for _, b := range booked {
		if b.arrival.start >= window.start {
			continue
		}
		if window.overlaps(b.busy) || b.readyToLeave()+domain.TravelMinutes > window.end {
			return domain.ReasonConflictWithPrevious
		}
	}

	// later visits: this visit plus travel must fit before their latest arrival
	leaveBy := window.end + visitCore + domain.TravelMinutes
	for _, b := range booked {
		if b.arrival.start < window.start {
			continue
		}
		if window.overlaps(b.busy) || leaveBy > b.arrival.end {
			return domain.ReasonConflictWithNext
		}
	}

	return ""
}

// BusyInterval returns the span, in minutes from the start of the day, during which
// the practitioner cannot take another booking because of a.
func BusyInterval(a *domain.Appointment) (start, end int, err error) {
	b, err := newBookedVisit(a)
	if err != nil {
		return 0, 0, err
	}
	return b.busy.start, b.busy.end, nil
}

// DetectConflict checks whether an arrival window for the given service collides
// with existing appointments of the same practitioner and date. Cancelled appointments are ignored.
// Returns an empty reason when there is no conflict.
func DetectConflict(window domain.ArrivalWindow, durationMinutes, clientCount int, existing []*domain.Appointment) (domain.UnavailableReason, error) {
	w, err := parseWindow(window)
	if err != nil {
		return "", err
	}
	booked, err := collectBooked(existing, 0)
	if err != nil {
		return "", err
	}
	return detectConflict(w, domain.VisitCore(durationMinutes, clientCount), booked), nil
}

func collectBooked(appointments []*domain.Appointment, excludeID int64) ([]bookedVisit, error) {
	booked := make([]bookedVisit, 0, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.IsActive() || (excludeID != 0 && a.ID == excludeID) {
			continue
		}
		b, err := newBookedVisit(a)
		if err != nil {
			return nil, err
		}
		booked = append(booked, b)
	}
	return booked, nil
}
