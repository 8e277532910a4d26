package domain

import (
	"database/sql/driver"
	"fmt"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus uint8

const (
	StatusNew AppointmentStatus = iota
	StatusConfirming
	StatusConfirmed
	StatusInProgress
	StatusCompleted
	StatusCancelled

	statusCount
)

var statusNames = [statusCount]string{
	StatusNew:        "new",
	StatusConfirming: "confirming",
	StatusConfirmed:  "confirmed",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusCancelled:  "cancelled",
}

// statusTransitions lists the allowed targets for every status.
// Terminal statuses have no targets.
var statusTransitions = [statusCount][]AppointmentStatus{
	StatusNew:        {StatusConfirming, StatusCancelled},
	StatusConfirming: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

// AllStatuses returns every appointment status in lifecycle order
func AllStatuses() []AppointmentStatus {
	out := make([]AppointmentStatus, 0, statusCount)
	for s := AppointmentStatus(0); s < statusCount; s++ {
		out = append(out, s)
	}
	return out
}

// ReschedulableStatuses statuses in which date/window may still change
var ReschedulableStatuses = []AppointmentStatus{StatusNew, StatusConfirming, StatusConfirmed}

// ParseAppointmentStatus parses the wire/database name of a status
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	for i, name := range statusNames {
		if name == s {
			return AppointmentStatus(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown appointment status %q", ErrValidation, s)
}

func (s AppointmentStatus) String() string {
	if s.IsValid() {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	return s < statusCount
}

// IsTerminal reports whether no further transitions are possible
func (s AppointmentStatus) IsTerminal() bool {
	return s.IsValid() && len(statusTransitions[s]) == 0
}

// IsActive reports whether the appointment still occupies the practitioner's time
func (s AppointmentStatus) IsActive() bool {
	return s != StatusCancelled
}

// CanTransitionTo reports whether s → target is allowed
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if !s.IsValid() {
		return false
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanBeRescheduled reports whether date/window may change in this status
func (s AppointmentStatus) CanBeRescheduled() bool {
	for _, r := range ReschedulableStatuses {
		if r == s {
			return true
		}
	}
	return false
}

// RequiresPayment reports whether entering s needs a PAID appointment
func (s AppointmentStatus) RequiresPayment() bool {
	return s == StatusConfirmed || s == StatusInProgress
}

// MarshalText implements encoding.TextMarshaler
func (s AppointmentStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("domain: invalid appointment status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *AppointmentStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseAppointmentStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer
func (s AppointmentStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("domain: invalid appointment status %d", uint8(s))
	}
	return statusNames[s], nil
}

// Scan implements sql.Scanner
func (s *AppointmentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into AppointmentStatus", src)
	}
}
