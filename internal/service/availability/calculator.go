// Package availability turns a practitioner's shift and booked appointments into
// bookable arrival windows. Everything here is a pure function of its input.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// DayInput is a snapshot of one practitioner's day
type DayInput struct {
	Date            time.Time // any moment of the day, in the scheduling time zone
	Shift           domain.Shift
	Appointments    []*domain.Appointment // same practitioner and date; cancelled ones are skipped
	DurationMinutes int
	ClientCount     int
	Now             time.Time

	// ExcludeAppointmentID is ignored when checking conflicts (the appointment being rescheduled)
	ExcludeAppointmentID int64
}

type dayPlan struct {
	date       time.Time
	now        time.Time
	working    bool
	shiftStart int
	shiftEnd   int
	clients    int
	booked     []bookedVisit
}

// Compute returns every candidate window of the shift in order, each tagged available or
// unavailable with a reason. A day off yields an empty list.
func Compute(in DayInput) ([]domain.WindowAvailability, error) {
	plan, err := newDayPlan(in)
	if err != nil {
		return nil, err
	}

	windows := plan.windows()
	result := make([]domain.WindowAvailability, 0, len(windows))
	for _, w := range windows {
		assessed, err := plan.assess(w, in.DurationMinutes)
		if err != nil {
			return nil, err
		}
		result = append(result, assessed)
	}
	return result, nil
}

// Check assesses a single window. A malformed window is a validation error; a well-formed
// window that the shift does not offer is unavailable with exceeds_shift.
func Check(in DayInput, window domain.ArrivalWindow) (domain.WindowAvailability, error) {
	plan, err := newDayPlan(in)
	if err != nil {
		return domain.WindowAvailability{}, err
	}

	w, err := parseWindow(window)
	if err != nil {
		return domain.WindowAvailability{}, err
	}
	if w.start%domain.WindowStepMinutes != 0 {
		return domain.WindowAvailability{}, fmt.Errorf("%w: window %s-%s does not start on a whole hour",
			ErrInvalidInput, window.Start, window.End)
	}

	if !plan.offers(w) {
		return domain.WindowAvailability{
			Window:             domain.ArrivalWindow{Start: window.Start, End: window.End},
			Reason:             domain.ReasonExceedsShift,
			AvailableDurations: []int{},
		}, nil
	}

	return plan.assess(w, in.DurationMinutes)
}

func newDayPlan(in DayInput) (*dayPlan, error) {
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, in.DurationMinutes)
	}
	if in.ClientCount < domain.MinClientCount || in.ClientCount > domain.MaxClientCount {
		return nil, fmt.Errorf("%w: client count must be between %d and %d, got %d",
			ErrInvalidInput, domain.MinClientCount, domain.MaxClientCount, in.ClientCount)
	}

	plan := &dayPlan{
		date:    types.DateOf(in.Date),
		now:     in.Now,
		clients: in.ClientCount,
	}

	if !in.Shift.DayOff && !in.Shift.Start.IsZero() && !in.Shift.End.IsZero() {
		start, err := in.Shift.Start.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: shift start: %v", ErrInvalidInput, err)
		}
		end, err := in.Shift.End.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: shift end: %v", ErrInvalidInput, err)
		}
		plan.shiftStart, plan.shiftEnd = start, end
		plan.working = start < end
	}

	booked, err := collectBooked(in.Appointments, in.ExcludeAppointmentID)
	if err != nil {
		return nil, err
	}
	plan.booked = booked

	return plan, nil
}

// windows starts at the first whole hour at or after shift start and steps by an hour
// while the window still closes within the shift
func (p *dayPlan) windows() []interval {
	if !p.working {
		return nil
	}

	var out []interval
	first := (p.shiftStart + domain.WindowStepMinutes - 1) / domain.WindowStepMinutes * domain.WindowStepMinutes
	for start := first; start+domain.ArrivalWindowMinutes <= p.shiftEnd; start += domain.WindowStepMinutes {
		out = append(out, interval{start: start, end: start + domain.ArrivalWindowMinutes})
	}
	return out
}

func (p *dayPlan) offers(w interval) bool {
	for _, candidate := range p.windows() {
		if candidate == w {
			return true
		}
	}
	return false
}

func (p *dayPlan) assess(w interval, requested int) (domain.WindowAvailability, error) {
	window, err := formatWindow(w)
	if err != nil {
		return domain.WindowAvailability{}, err
	}

	reason := p.evaluate(w, requested)
	if reason == "" && !domain.IsStandardDuration(requested) {
		reason = domain.ReasonDurationNotAvailable
	}

	return domain.WindowAvailability{
		Window:             window,
		Available:          reason == "",
		Reason:             reason,
		AvailableDurations: p.availableDurations(w),
	}, nil
}

// evaluate applies lead time, shift bound and conflicts, in that order
func (p *dayPlan) evaluate(w interval, duration int) domain.UnavailableReason {
	if p.tooSoon(w) {
		return domain.ReasonTooSoon
	}

	visitCore := domain.VisitCore(duration, p.clients)
	if w.end+visitCore > p.shiftEnd {
		return domain.ReasonExceedsShift
	}

	return detectConflict(w, visitCore, p.booked)
}

func (p *dayPlan) availableDurations(w interval) []int {
	out := make([]int, 0, len(domain.StandardDurations))
	for _, d := range domain.StandardDurations {
		if p.evaluate(w, d) == "" {
			out = append(out, d)
		}
	}
	return out
}

// tooSoon compares wall-clock HH:MM on the plan date, so DST days keep the right offset
func (p *dayPlan) tooSoon(w interval) bool {
	y, m, d := p.date.Date()
	latestArrival := time.Date(y, m, d, 0, w.end, 0, 0, p.date.Location())
	return latestArrival.Before(p.now.Add(domain.MinLeadTimeHours * time.Hour))
}

func parseWindow(window domain.ArrivalWindow) (interval, error) {
	start, err := window.Start.Minutes()
	if err != nil {
		return interval{}, fmt.Errorf("%w: window start: %v", ErrInvalidInput, err)
	}
	end, err := window.End.Minutes()
	if err != nil {
		return interval{}, fmt.Errorf("%w: window end: %v", ErrInvalidInput, err)
	}
	if end-start != domain.ArrivalWindowMinutes {
		return interval{}, fmt.Errorf("%w: window %s-%s must be %d minutes wide",
			ErrInvalidInput, window.Start, window.End, domain.ArrivalWindowMinutes)
	}
	return interval{start: start, end: end}, nil
}

func formatWindow(w interval) (domain.ArrivalWindow, error) {
	start, err := types.FromMinutes(w.start)
	if err != nil {
		return domain.ArrivalWindow{}, err
	}
	end, err := types.FromMinutes(w.end)
	if err != nil {
		return domain.ArrivalWindow{}, err
	}
	return domain.ArrivalWindow{Start: start, End: end}, nil
}
