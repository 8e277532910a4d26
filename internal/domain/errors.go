package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation input is malformed or references unknown/unsupported catalog data
	ErrValidation = errors.New("validation error")

	// ErrUnavailable the requested window cannot be booked; see UnavailableError for the reason
	ErrUnavailable = errors.New("window unavailable")

	// ErrConcurrencyConflict a concurrent transaction won the race
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrInvalidStateTransition the appointment cannot move to the requested status
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrPaymentRequired the target status needs a paid appointment
	ErrPaymentRequired = errors.New("payment required")

	// ErrAppointmentNotFound no appointment with the given id
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// UnavailableError is the typed rejection of a window
type UnavailableError struct {
	Reason UnavailableReason
	Cause  error
}

// NewUnavailableError creates a rejection with the given reason
func NewUnavailableError(reason UnavailableReason) *UnavailableError {
	return &UnavailableError{Reason: reason}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("window unavailable: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("window unavailable: %s", e.Reason)
}

// Unwrap exposes ErrUnavailable and the cause to errors.Is
func (e *UnavailableError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrUnavailable, e.Cause}
	}
	return []error{ErrUnavailable}
}

// ReasonOf extracts the rejection reason from err
func ReasonOf(err error) (UnavailableReason, bool) {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue.Reason, true
	}
	return "", false
}

// TransitionError is returned for a disallowed status change
type TransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *TransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("invalid state transition: %s is terminal, cannot move to %s", e.From, e.To)
	}
	return fmt.Sprintf("invalid state transition: %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// PaymentTransitionError is returned for a disallowed payment status change
type PaymentTransitionError struct {
	From PaymentStatus
	To   PaymentStatus
}

func (e *PaymentTransitionError) Error() string {
	return fmt.Sprintf("invalid payment transition: %s -> %s", e.From, e.To)
}

func (e *PaymentTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}
