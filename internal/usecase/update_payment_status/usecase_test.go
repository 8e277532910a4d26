package update_payment_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
	"github.com/m04kA/SMC-HomeBookingService/pkg/ptr"
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

func setup(t *testing.T, a *domain.Appointment) (*UseCase, *memory.AppointmentRepository, *recordingNotifier, int64) {
	t.Helper()

	store := memory.NewStore()
	repo := memory.NewAppointmentRepository(store)
	notifier := &recordingNotifier{}

	a.PractitionerID = 7
	a.ServiceID = 3
	a.DurationMinutes = 60
	a.Date = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	a.WindowStart = "10:00"
	a.WindowEnd = "10:30"
	a.ClientCount = 1
	created, err := repo.Create(context.Background(), a)
	require.NoError(t, err)

	uc := NewUseCase(repo, memory.NewTxManager(store), notifier, logger.NewNop())
	uc.timeProvider = fixedTime{t: now}
	return uc, repo, notifier, created.ID
}

func TestExecute_Paid(t *testing.T) {
	uc, repo, notifier, id := setup(t, &domain.Appointment{Status: domain.StatusNew, PaymentStatus: domain.PaymentPending})

	got, err := uc.Execute(context.Background(), &Request{
		AppointmentID: id, Status: domain.PaymentPaid, ExternalRef: ptr.Ptr("pay_123"), Actor: "payments",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, domain.StatusNew, got.Status)
	require.NotNil(t, got.PaymentRef)
	assert.Equal(t, "pay_123", *got.PaymentRef)

	history, err := repo.ListHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ChangeKindPayment, history[0].Kind)
	assert.Equal(t, "pending", history[0].From)
	assert.Equal(t, "paid", history[0].To)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notifications.EventAppointmentPaymentChanged, notifier.events[0].Type)
}

func TestExecute_AutoConfirm(t *testing.T) {
	uc, repo, notifier, id := setup(t, &domain.Appointment{
		Status:        domain.StatusConfirming,
		PaymentStatus: domain.PaymentPending,
		Confirmation:  &domain.ConfirmationDetails{Address: "Lenina 1", ContactPhone: "+79990001122"},
	})

	got, err := uc.Execute(context.Background(), &Request{AppointmentID: id, Status: domain.PaymentPaid, Actor: "payments"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)

	history, err := repo.ListHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ChangeKindStatus, history[1].Kind)
	assert.Equal(t, domain.SystemActor, history[1].Actor)

	require.Len(t, notifier.events, 2)
	assert.Equal(t, notifications.EventAppointmentStatusChanged, notifier.events[1].Type)
}

func TestExecute_NoAutoConfirmWithoutDetails(t *testing.T) {
	uc, _, _, id := setup(t, &domain.Appointment{Status: domain.StatusConfirming, PaymentStatus: domain.PaymentPending})

	got, err := uc.Execute(context.Background(), &Request{AppointmentID: id, Status: domain.PaymentPaid, Actor: "payments"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirming, got.Status)
}

func TestExecute_DuplicateIsNoop(t *testing.T) {
	uc, repo, notifier, id := setup(t, &domain.Appointment{Status: domain.StatusNew, PaymentStatus: domain.PaymentPaid})

	got, err := uc.Execute(context.Background(), &Request{AppointmentID: id, Status: domain.PaymentPaid, Actor: "payments"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	history, err := repo.ListHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, notifier.events)
}

func TestExecute_InvalidPaymentTransition(t *testing.T) {
	uc, _, _, id := setup(t, &domain.Appointment{Status: domain.StatusCancelled, PaymentStatus: domain.PaymentRefunded})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: id, Status: domain.PaymentPaid, Actor: "payments"})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _, id := setup(t, &domain.Appointment{Status: domain.StatusNew, PaymentStatus: domain.PaymentPending})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: id, Status: domain.PaymentNotPaid, Actor: "payments"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: id, Status: domain.PaymentPaid})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _ := setup(t, &domain.Appointment{Status: domain.StatusNew})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 404, Status: domain.PaymentPaid, Actor: "payments"})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}
