package submit_confirmation

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

func setup(t *testing.T, status domain.AppointmentStatus, payment domain.PaymentStatus) (*UseCase, *memory.AppointmentRepository, *recordingNotifier, int64) {
	t.Helper()

	store := memory.NewStore()
	repo := memory.NewAppointmentRepository(store)
	notifier := &recordingNotifier{}

	a, err := repo.Create(context.Background(), &domain.Appointment{
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

	uc := NewUseCase(repo, memory.NewTxManager(store), notifier, logger.NewNop())
	uc.timeProvider = fixedTime{t: now}
	return uc, repo, notifier, a.ID
}

func request(id int64) *Request {
	return &Request{
		AppointmentID: id,
		Address:       "Lenina 1, apt 5",
		Floor:         ptr.Ptr("3"),
		HasPets:       true,
		PetNotes:      ptr.Ptr("friendly cat"),
		TableNeeded:   true,
		ContactPhone:  "+79990001122",
		Actor:         "user-42",
	}
}

func TestExecute_NewMovesToConfirming(t *testing.T) {
	uc, repo, notifier, id := setup(t, domain.StatusNew, domain.PaymentNotPaid)

	got, err := uc.Execute(context.Background(), request(id))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirming, got.Status)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored.Confirmation)
	assert.Equal(t, "Lenina 1, apt 5", stored.Confirmation.Address)
	assert.Equal(t, "user-42", stored.Confirmation.SubmittedBy)
	assert.True(t, stored.Confirmation.HasPets)

	history, err := repo.ListHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "confirming", history[0].To)
	assert.Len(t, notifier.events, 1)
}

func TestExecute_AutoConfirmsWhenPaid(t *testing.T) {
	uc, repo, notifier, id := setup(t, domain.StatusNew, domain.PaymentPaid)

	got, err := uc.Execute(context.Background(), request(id))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	require.NotNil(t, got.ConfirmedBy)
	assert.Equal(t, domain.SystemActor, *got.ConfirmedBy)

	history, err := repo.ListHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "user-42", history[0].Actor)
	assert.Equal(t, "confirmed", history[1].To)
	assert.Equal(t, domain.SystemActor, history[1].Actor)
	assert.Len(t, notifier.events, 1)
}

func TestExecute_ConfirmingUpdatesDetailsOnly(t *testing.T) {
	uc, repo, notifier, id := setup(t, domain.StatusConfirming, domain.PaymentPending)

	got, err := uc.Execute(context.Background(), request(id))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirming, got.Status)

	history, err := repo.ListHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, notifier.events)
}

func TestExecute_RejectedAfterConfirmation(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(status.String(), func(t *testing.T) {
			uc, repo, _, id := setup(t, status, domain.PaymentPaid)

			_, err := uc.Execute(context.Background(), request(id))
			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

			stored, err := repo.GetByID(context.Background(), id)
			require.NoError(t, err)
			assert.Nil(t, stored.Confirmation)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _, id := setup(t, domain.StatusNew, domain.PaymentNotPaid)

	req := request(id)
	req.Address = " "
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = request(id)
	req.ContactPhone = ""
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _ := setup(t, domain.StatusNew, domain.PaymentNotPaid)

	_, err := uc.Execute(context.Background(), request(404))
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}
