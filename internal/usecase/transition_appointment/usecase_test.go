package transition_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
	"github.com/m04kA/SMC-HomeBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HomeBookingService/pkg/txmanager"
)

var now = time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type recordingNotifier struct {
	events []notifications.Event
}

func (n *recordingNotifier) Dispatch(_ context.Context, event notifications.Event) {
	n.events = append(n.events, event)
}

type nopOutcomes struct{}

func (nopOutcomes) ObserveBookingOutcome(string, string, string) {}

// flakyTx первые failures вызовов завершаются ошибкой сериализации
type flakyTx struct {
	inner    TransactionManager
	failures int
	calls    int
}

func (f *flakyTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.calls <= f.failures {
		return txmanager.ErrSerializationFailure
	}
	return f.inner.DoSerializable(ctx, fn)
}

type env struct {
	uc       *UseCase
	repo     *memory.AppointmentRepository
	holds    *memory.HoldRepository
	notifier *recordingNotifier
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.NewStore()
	repo := memory.NewAppointmentRepository(store)
	holds := memory.NewHoldRepository(store)
	notifier := &recordingNotifier{}

	uc := NewUseCase(repo, holds, memory.NewDayLockRepository(), memory.NewTxManager(store), notifier, nopOutcomes{}, logger.NewNop())
	uc.timeProvider = fixedTime{t: now}

	return &env{uc: uc, repo: repo, holds: holds, notifier: notifier}
}

func (e *env) seed(t *testing.T, status domain.AppointmentStatus, payment domain.PaymentStatus) *domain.Appointment {
	t.Helper()

	a, err := e.repo.Create(context.Background(), &domain.Appointment{
		PractitionerID:  7,
		ServiceID:       3,
		DurationMinutes: 60,
		Date:            time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		WindowStart:     "10:00",
		WindowEnd:       "10:30",
		Status:          status,
		PaymentStatus:   payment,
		ClientCount:     1,
		Client:          domain.ClientInfo{Name: "Maria", Phone: "+79990001122", Address: "Lenina 1"},
	})
	require.NoError(t, err)

	h, err := domain.NewScheduleHold(a)
	require.NoError(t, err)
	require.NoError(t, e.holds.Hold(context.Background(), h))
	return a
}

func TestExecute_NewToConfirming(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, domain.StatusNew, domain.PaymentNotPaid)

	got, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Target: domain.StatusConfirming, Actor: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirming, got.Status)

	history, err := e.repo.ListHistory(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "new", history[0].From)
	assert.Equal(t, "confirming", history[0].To)

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, notifications.EventAppointmentStatusChanged, e.notifier.events[0].Type)
}

func TestExecute_ConfirmRequiresPayment(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, domain.StatusConfirming, domain.PaymentPending)

	_, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Target: domain.StatusConfirmed, Actor: "admin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPaymentRequired)

	stored, err := e.repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirming, stored.Status)
	assert.Empty(t, e.notifier.events)
}

func TestExecute_ConfirmWhenPaid(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, domain.StatusConfirming, domain.PaymentPaid)

	got, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Target: domain.StatusConfirmed, Actor: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	require.NotNil(t, got.ConfirmedBy)
	assert.Equal(t, "admin", *got.ConfirmedBy)
}

func TestExecute_CancelReleasesWindow(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, domain.StatusConfirmed, domain.PaymentPaid)

	other := *a
	other.ID = a.ID + 100
	h, err := domain.NewScheduleHold(&other)
	require.NoError(t, err)
	assert.ErrorIs(t, e.holds.Hold(context.Background(), h), hold.ErrWindowTaken)

	got, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: a.ID,
		Target:        domain.StatusCancelled,
		Actor:         "user-42",
		Comment:       ptr.Ptr("changed plans"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "changed plans", *got.CancellationReason)

	// окно снова можно занять
	assert.NoError(t, e.holds.Hold(context.Background(), h))
}

func TestExecute_CompleteKeepsWindowHeld(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, domain.StatusInProgress, domain.PaymentPaid)

	got, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Target: domain.StatusCompleted, Actor: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	other := *a
	other.ID = a.ID + 100
	h, err := domain.NewScheduleHold(&other)
	require.NoError(t, err)
	assert.ErrorIs(t, e.holds.Hold(context.Background(), h), hold.ErrWindowTaken)
}

func TestExecute_RejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.AppointmentStatus
		target domain.AppointmentStatus
	}{
		{name: "skip confirming", from: domain.StatusNew, target: domain.StatusConfirmed},
		{name: "back to new", from: domain.StatusConfirming, target: domain.StatusNew},
		{name: "from completed", from: domain.StatusCompleted, target: domain.StatusCancelled},
		{name: "from cancelled", from: domain.StatusCancelled, target: domain.StatusConfirming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			a := e.seed(t, tt.from, domain.PaymentPaid)

			_, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Target: tt.target, Actor: "admin"})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

			history, err := e.repo.ListHistory(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), &Request{AppointmentID: 404, Target: domain.StatusCancelled, Actor: "admin"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), &Request{AppointmentID: 1, Target: domain.StatusCancelled})
	assert.ErrorIs(t, err, domain.ErrValidation)

	long := strings.Repeat("a", domain.MaxCancellationReasonLength+1)
	_, err = e.uc.Execute(context.Background(), &Request{
		AppointmentID: 1, Target: domain.StatusCancelled, Actor: "admin", Comment: ptr.Ptr(long),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_RetriesSerializationFailure(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, domain.StatusNew, domain.PaymentNotPaid)
	tx := &flakyTx{inner: e.uc.txManager, failures: 1}
	e.uc.txManager = tx

	got, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Target: domain.StatusCancelled, Actor: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, 2, tx.calls)
}

func TestExecute_GivesUpAfterSecondSerializationFailure(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, domain.StatusNew, domain.PaymentNotPaid)
	e.uc.txManager = &flakyTx{inner: e.uc.txManager, failures: maxAttempts}

	_, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Target: domain.StatusCancelled, Actor: "admin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.ErrorIs(t, err, txmanager.ErrSerializationFailure)
}
