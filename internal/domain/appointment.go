package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// ClientInfo contact data of the person who booked
type ClientInfo struct {
	Name    string
	Phone   string
	Email   *string
	Address string
}

// ConfirmationDetails logistics collected before payment (1:1 with Appointment)
type ConfirmationDetails struct {
	Address       string
	EntranceNotes *string
	Floor         *string
	ParkingNotes  *string
	HasPets       bool
	PetNotes      *string
	TableNeeded   bool
	OilPreference *string
	ContactPhone  string
	SubmittedBy   string
	SubmittedAt   time.Time
}

// IsComplete reports whether the practitioner has enough to find the client
func (d *ConfirmationDetails) IsComplete() bool {
	return d != nil && d.Address != "" && d.ContactPhone != ""
}

// QualityRecord feedback recorded after the visit (1:1 with Appointment)
type QualityRecord struct {
	Rating            int
	Comment           *string
	PractitionerNotes *string
	RecordedBy        string
	RecordedAt        time.Time
}

// Appointment is a booked home visit. Appointments are never deleted, only transitioned.
type Appointment struct {
	ID              int64
	PractitionerID  int64
	ServiceID       int64
	DurationMinutes int
	Date            time.Time
	WindowStart     types.TimeString
	WindowEnd       types.TimeString
	Status          AppointmentStatus
	PaymentStatus   PaymentStatus
	PaymentRef      *string
	ClientCount     int
	PressureLevel   string
	Client          ClientInfo

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	ConfirmedBy        *string
	ConfirmedAt        *time.Time
	CancelledBy        *string
	CancelledAt        *time.Time
	CancellationReason *string

	Confirmation *ConfirmationDetails
	Quality      *QualityRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the arrival window
func (a *Appointment) Window() ArrivalWindow {
	return ArrivalWindow{Start: a.WindowStart, End: a.WindowEnd}
}

// IsActive reports whether the appointment still blocks the practitioner's time
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// TransitionTo validates and applies a status change with its side effects.
// comment is stored as the cancellation reason when cancelling.
func (a *Appointment) TransitionTo(target AppointmentStatus, actor string, comment *string, now time.Time) (*StatusChange, error) {
	if !a.Status.CanTransitionTo(target) {
		return nil, &TransitionError{From: a.Status, To: target}
	}
	if target.RequiresPayment() && a.PaymentStatus != PaymentPaid {
		return nil, fmt.Errorf("%w: %s requires payment %s, current %s",
			ErrPaymentRequired, target, PaymentPaid, a.PaymentStatus)
	}

	change := &StatusChange{
		AppointmentID: a.ID,
		Kind:          ChangeKindStatus,
		From:          a.Status.String(),
		To:            target.String(),
		Actor:         actor,
		Comment:       comment,
		ChangedAt:     now,
	}

	switch target {
	case StatusConfirmed:
		a.ConfirmedBy = &actor
		a.ConfirmedAt = &now
	case StatusCancelled:
		a.CancelledBy = &actor
		a.CancelledAt = &now
		a.CancellationReason = comment
	}

	a.Status = target
	a.UpdatedAt = now
	return change, nil
}

// ChangePayment validates and applies a payment sub-state change
func (a *Appointment) ChangePayment(target PaymentStatus, actor string, externalRef *string, now time.Time) (*StatusChange, error) {
	if !a.PaymentStatus.CanTransitionTo(target) {
		return nil, &PaymentTransitionError{From: a.PaymentStatus, To: target}
	}

	change := &StatusChange{
		AppointmentID: a.ID,
		Kind:          ChangeKindPayment,
		From:          a.PaymentStatus.String(),
		To:            target.String(),
		Actor:         actor,
		Comment:       externalRef,
		ChangedAt:     now,
	}

	a.PaymentStatus = target
	if externalRef != nil {
		a.PaymentRef = externalRef
	}
	a.UpdatedAt = now
	return change, nil
}

// ReadyForAutoConfirm reports whether payment and confirmation details both hold
// while the appointment waits in CONFIRMING
func (a *Appointment) ReadyForAutoConfirm() bool {
	return a.Status == StatusConfirming &&
		a.PaymentStatus == PaymentPaid &&
		a.Confirmation.IsComplete()
}

// AutoConfirm moves a ready appointment to CONFIRMED on behalf of SystemActor.
// Returns nil when the appointment is not ready.
func (a *Appointment) AutoConfirm(now time.Time) (*StatusChange, error) {
	if !a.ReadyForAutoConfirm() {
		return nil, nil
	}
	return a.TransitionTo(StatusConfirmed, SystemActor, nil, now)
}

// Reschedule moves the appointment to a new date and window
func (a *Appointment) Reschedule(date time.Time, window ArrivalWindow, actor string, now time.Time) (*StatusChange, error) {
	if !a.Status.CanBeRescheduled() {
		return nil, fmt.Errorf("%w: cannot reschedule appointment in status %s", ErrInvalidStateTransition, a.Status)
	}

	change := &StatusChange{
		AppointmentID: a.ID,
		Kind:          ChangeKindSchedule,
		From:          fmt.Sprintf("%s %s-%s", a.Date.Format(DateFormat), a.WindowStart, a.WindowEnd),
		To:            fmt.Sprintf("%s %s-%s", date.Format(DateFormat), window.Start, window.End),
		Actor:         actor,
		ChangedAt:     now,
	}

	a.Date = date
	a.WindowStart = window.Start
	a.WindowEnd = window.End
	a.UpdatedAt = now
	return change, nil
}

// ChangeKind what an audit entry records
type ChangeKind string

const (
	ChangeKindCreated  ChangeKind = "created"
	ChangeKindStatus   ChangeKind = "status"
	ChangeKindPayment  ChangeKind = "payment"
	ChangeKindSchedule ChangeKind = "schedule"
)

// StatusChange is one entry of the appointment audit trail
type StatusChange struct {
	ID            int64
	AppointmentID int64
	Kind          ChangeKind
	From          string
	To            string
	Actor         string
	Comment       *string
	ChangedAt     time.Time
}

// NewCreatedChange is the first audit entry of an appointment
func NewCreatedChange(a *Appointment, actor string, now time.Time) *StatusChange {
	return &StatusChange{
		AppointmentID: a.ID,
		Kind:          ChangeKindCreated,
		To:            a.Status.String(),
		Actor:         actor,
		ChangedAt:     now,
	}
}

// ScheduleHold marks the practitioner's time as taken by an appointment.
// Busy bounds are minutes from the start of the day and may fall outside [0, 1440].
type ScheduleHold struct {
	AppointmentID  int64
	PractitionerID int64
	Date           time.Time
	WindowStart    types.TimeString
	WindowEnd      types.TimeString
	BusyFrom       int
	BusyUntil      int
	ReleasedAt     *time.Time
}

// NewScheduleHold builds the hold for an appointment's busy interval
func NewScheduleHold(a *Appointment) (*ScheduleHold, error) {
	start, err := a.WindowStart.Minutes()
	if err != nil {
		return nil, err
	}
	end, err := a.WindowEnd.Minutes()
	if err != nil {
		return nil, err
	}
	return &ScheduleHold{
		AppointmentID:  a.ID,
		PractitionerID: a.PractitionerID,
		Date:           a.Date,
		WindowStart:    a.WindowStart,
		WindowEnd:      a.WindowEnd,
		BusyFrom:       start - TravelMinutes,
		BusyUntil:      end + VisitCore(a.DurationMinutes, a.ClientCount),
	}, nil
}

// AppointmentsFilter filter for a practitioner's day
type AppointmentsFilter struct {
	PractitionerID   int64
	Date             time.Time
	IncludeCancelled bool
}
