package domain

// Visit timing, in minutes
const (
	ArrivalWindowMinutes = 30 // width of an arrival window
	WindowStepMinutes    = 60 // distance between consecutive window starts
	TravelMinutes        = 30 // fixed travel time between clients
	PreVisitMinutes      = 10 // setup at the client's home
	PostVisitMinutes     = 10 // teardown at the client's home
	ClientBufferMinutes  = 10 // gap between consecutive clients of one visit
	MinLeadTimeHours     = 2  // minimum notice between booking and latest arrival
)

// StandardDurations durations (minutes) offered for every arrival window
var StandardDurations = []int{30, 45, 60, 90, 120}

// Business validation constants
const (
	MinClientCount              = 1
	MaxClientCount              = 4
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCommentLength            = 1000
	MinRating                   = 1
	MaxRating                   = 5
)

// SystemActor actor recorded for automatic transitions
const SystemActor = "system"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsStandardDuration reports whether minutes is one of StandardDurations
func IsStandardDuration(minutes int) bool {
	for _, d := range StandardDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// MassageTotal is the hands-on time of a visit. Several clients are served one after another
// with ClientBufferMinutes between them.
func MassageTotal(durationMinutes, clientCount int) int {
	if clientCount <= 1 {
		return durationMinutes
	}
	return durationMinutes*clientCount + ClientBufferMinutes*(clientCount-1)
}

// VisitCore is the time spent at the client's home: setup, massage, teardown.
func VisitCore(durationMinutes, clientCount int) int {
	return PreVisitMinutes + MassageTotal(durationMinutes, clientCount) + PostVisitMinutes
}

// TotalBusy is the visit core plus travel to the client.
func TotalBusy(durationMinutes, clientCount int) int {
	return TravelMinutes + VisitCore(durationMinutes, clientCount)
}
