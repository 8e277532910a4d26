package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/pkg/ptr"
)

func TestVisitArithmetic(t *testing.T) {
	assert.Equal(t, 60, MassageTotal(60, 1))
	assert.Equal(t, 60, MassageTotal(60, 0))
	assert.Equal(t, 130, MassageTotal(60, 2))
	assert.Equal(t, 200, MassageTotal(60, 3))
	assert.Equal(t, 80, VisitCore(60, 1))
	assert.Equal(t, 110, TotalBusy(60, 1))
}

func TestStatusTransitionTable(t *testing.T) {
	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusNew:        {StatusConfirming, StatusCancelled},
		StatusConfirming: {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestStatusNamesRoundTrip(t *testing.T) {
	for _, s := range AllStatuses() {
		parsed, err := ParseAppointmentStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	for _, s := range AllPaymentStatuses() {
		parsed, err := ParsePaymentStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseAppointmentStatus("pending")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransitionFromTerminalAlwaysFails(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		for _, target := range AllStatuses() {
			a := &Appointment{Status: terminal, PaymentStatus: PaymentPaid}
			_, err := a.TransitionTo(target, "admin", nil, now)

			var te *TransitionError
			require.ErrorAs(t, err, &te, "%s -> %s", terminal, target)
			assert.ErrorIs(t, err, ErrInvalidStateTransition)
			assert.Equal(t, terminal, a.Status)
		}
	}
}

func TestTransitionSideEffects(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	a := &Appointment{ID: 5, Status: StatusConfirming, PaymentStatus: PaymentNotPaid}
	_, err := a.TransitionTo(StatusConfirmed, "admin", nil, now)
	assert.ErrorIs(t, err, ErrPaymentRequired)
	assert.Equal(t, StatusConfirming, a.Status)

	a.PaymentStatus = PaymentPaid
	change, err := a.TransitionTo(StatusConfirmed, "admin", nil, now)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, a.Status)
	assert.Equal(t, "admin", *a.ConfirmedBy)
	assert.Equal(t, now, *a.ConfirmedAt)
	assert.Equal(t, ChangeKindStatus, change.Kind)
	assert.Equal(t, "confirming", change.From)
	assert.Equal(t, "confirmed", change.To)

	change, err = a.TransitionTo(StatusCancelled, "client", ptr.Ptr("sick"), now)
	require.NoError(t, err)
	assert.Equal(t, "client", *a.CancelledBy)
	assert.Equal(t, "sick", *a.CancellationReason)
	assert.Equal(t, "sick", *change.Comment)
}

func TestChangePayment(t *testing.T) {
	now := time.Now()
	a := &Appointment{PaymentStatus: PaymentNotPaid}

	_, err := a.ChangePayment(PaymentRefunded, "psp", nil, now)
	var pe *PaymentTransitionError
	assert.ErrorAs(t, err, &pe)

	_, err = a.ChangePayment(PaymentPending, "psp", ptr.Ptr("tx-1"), now)
	require.NoError(t, err)
	_, err = a.ChangePayment(PaymentPaid, "psp", nil, now)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", *a.PaymentRef)
	assert.Equal(t, PaymentPaid, a.PaymentStatus)
}

func TestReadyForAutoConfirm(t *testing.T) {
	a := &Appointment{Status: StatusConfirming, PaymentStatus: PaymentPaid}
	assert.False(t, a.ReadyForAutoConfirm())

	a.Confirmation = &ConfirmationDetails{Address: "Lenina 1", ContactPhone: "+7900"}
	assert.True(t, a.ReadyForAutoConfirm())

	a.Status = StatusNew
	assert.False(t, a.ReadyForAutoConfirm())
}

func TestAutoConfirm(t *testing.T) {
	now := time.Now()
	a := &Appointment{ID: 5, Status: StatusConfirming, PaymentStatus: PaymentPending}
	a.Confirmation = &ConfirmationDetails{Address: "Lenina 1", ContactPhone: "+7900"}

	change, err := a.AutoConfirm(now)
	require.NoError(t, err)
	assert.Nil(t, change)
	assert.Equal(t, StatusConfirming, a.Status)

	a.PaymentStatus = PaymentPaid
	change, err = a.AutoConfirm(now)
	require.NoError(t, err)
	require.NotNil(t, change)
	assert.Equal(t, StatusConfirmed, a.Status)
	assert.Equal(t, SystemActor, change.Actor)
	assert.Equal(t, SystemActor, *a.ConfirmedBy)
}

func TestReschedule(t *testing.T) {
	now := time.Now()
	day := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	w := ArrivalWindow{Start: "11:00", End: "11:30"}

	a := &Appointment{Status: StatusConfirmed, Date: day.AddDate(0, 0, -1), WindowStart: "10:00", WindowEnd: "10:30"}
	change, err := a.Reschedule(day, w, "admin", now)
	require.NoError(t, err)
	assert.Equal(t, w, a.Window())
	assert.Equal(t, "2026-04-01 10:00-10:30", change.From)

	a.Status = StatusInProgress
	_, err = a.Reschedule(day, w, "admin", now)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestUnavailableError(t *testing.T) {
	err := error(&UnavailableError{Reason: ReasonSlotOccupied, Cause: ErrConcurrencyConflict})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, ErrConcurrencyConflict)

	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonSlotOccupied, reason)

	_, ok = ReasonOf(errors.New("other"))
	assert.False(t, ok)
}

func TestNewScheduleHold(t *testing.T) {
	a := &Appointment{ID: 1, PractitionerID: 2, WindowStart: "13:00", WindowEnd: "13:30", DurationMinutes: 60, ClientCount: 1}
	h, err := NewScheduleHold(a)
	require.NoError(t, err)
	assert.Equal(t, 12*60+30, h.BusyFrom)
	assert.Equal(t, 14*60+50, h.BusyUntil)
}
