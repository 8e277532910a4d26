package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/memory"
	catalogClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts"
	shiftModels "github.com/m04kA/SMC-HomeBookingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

var (
	day     = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	nextDay = day.AddDate(0, 0, 1)
	now     = time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeCatalog struct {
	practitioner *domain.Practitioner
}

func (f *fakeCatalog) GetPractitioner(_ context.Context, id int64) (*domain.Practitioner, error) {
	if f.practitioner == nil || f.practitioner.ID != id {
		return nil, catalogClient.ErrPractitionerNotFound
	}
	return f.practitioner, nil
}

type recordingNotifier struct {
	events []notifications.Event
}

func (n *recordingNotifier) Dispatch(_ context.Context, event notifications.Event) {
	n.events = append(n.events, event)
}

type nopOutcomes struct{}

func (nopOutcomes) ObserveBookingOutcome(string, string, string) {}

type env struct {
	uc       *UseCase
	repo     *memory.AppointmentRepository
	holds    *memory.HoldRepository
	shifts   *shifts.Service
	notifier *recordingNotifier
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.NewStore()
	catalog := &fakeCatalog{practitioner: &domain.Practitioner{
		ID: 7, Name: "Anna", IsActive: true, ShiftStart: "09:00", ShiftEnd: "21:00", ServiceIDs: []int64{3},
	}}
	log := logger.NewNop()
	repo := memory.NewAppointmentRepository(store)
	holds := memory.NewHoldRepository(store)
	shiftService := shifts.NewService(memory.NewShiftRepository(store), catalog, log)
	notifier := &recordingNotifier{}

	uc := NewUseCase(repo, holds, memory.NewDayLockRepository(), lock.NewLocal(), catalog, shiftService,
		memory.NewTxManager(store), notifier, nopOutcomes{}, log)
	uc.timeProvider = fixedTime{t: now}

	return &env{uc: uc, repo: repo, holds: holds, shifts: shiftService, notifier: notifier}
}

func (e *env) seed(t *testing.T, date time.Time, start, end types.TimeString, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()

	a, err := e.repo.Create(context.Background(), &domain.Appointment{
		PractitionerID:  7,
		ServiceID:       3,
		DurationMinutes: 60,
		Date:            date,
		WindowStart:     start,
		WindowEnd:       end,
		Status:          status,
		PaymentStatus:   domain.PaymentNotPaid,
		ClientCount:     1,
		Client:          domain.ClientInfo{Name: "Maria", Phone: "+79990001122", Address: "Lenina 1"},
	})
	require.NoError(t, err)

	h, err := domain.NewScheduleHold(a)
	require.NoError(t, err)
	require.NoError(t, e.holds.Hold(context.Background(), h))
	return a
}

func request(id int64, date time.Time, start, end types.TimeString) *Request {
	return &Request{
		AppointmentID: id,
		Date:          date,
		Window:        domain.ArrivalWindow{Start: start, End: end},
		Actor:         "user-42",
	}
}

func TestExecute_MovesToAnotherDay(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, day, "10:00", "10:30", domain.StatusNew)

	got, err := e.uc.Execute(context.Background(), request(a.ID, nextDay, "15:00", "15:30"))
	require.NoError(t, err)
	assert.Equal(t, nextDay, got.Date)
	assert.Equal(t, types.TimeString("15:00"), got.WindowStart)
	assert.Equal(t, domain.StatusNew, got.Status)

	oldDay, err := e.repo.ListByPractitionerAndDate(context.Background(), domain.AppointmentsFilter{PractitionerID: 7, Date: day})
	require.NoError(t, err)
	assert.Empty(t, oldDay)

	history, err := e.repo.ListHistory(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ChangeKindSchedule, history[0].Kind)
	assert.Equal(t, "2026-06-15 10:00-10:30", history[0].From)
	assert.Equal(t, "2026-06-16 15:00-15:30", history[0].To)

	// прежнее окно освободилось
	other := e.seed(t, day, "10:00", "10:30", domain.StatusNew)
	assert.NotZero(t, other.ID)

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, notifications.EventAppointmentRescheduled, e.notifier.events[0].Type)
}

func TestExecute_SameDayIgnoresItself(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, day, "10:00", "10:30", domain.StatusConfirming)

	// 11:00 конфликтует с текущим окном 10:00, но сама запись не учитывается
	got, err := e.uc.Execute(context.Background(), request(a.ID, day, "11:00", "11:30"))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), got.WindowStart)
}

func TestExecute_ConflictWithAnotherAppointment(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, day, "10:00", "10:30", domain.StatusNew)
	e.seed(t, nextDay, "15:00", "15:30", domain.StatusConfirmed)

	_, err := e.uc.Execute(context.Background(), request(a.ID, nextDay, "15:00", "15:30"))
	reason, ok := domain.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonSlotOccupied, reason)

	_, err = e.uc.Execute(context.Background(), request(a.ID, nextDay, "16:00", "16:30"))
	reason, _ = domain.ReasonOf(err)
	assert.Equal(t, domain.ReasonConflictWithPrevious, reason)

	stored, err := e.repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, day, stored.Date)
	assert.Empty(t, e.notifier.events)
}

func TestExecute_DayOffOverride(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, day, "10:00", "10:30", domain.StatusNew)

	_, err := e.shifts.UpsertOverride(context.Background(), &shiftModels.UpsertOverrideRequest{
		PractitionerID: 7, Date: nextDay, DayOff: true, Actor: "admin",
	})
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request(a.ID, nextDay, "15:00", "15:30"))
	reason, ok := domain.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonExceedsShift, reason)
}

func TestExecute_NotReschedulable(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(status.String(), func(t *testing.T) {
			e := newEnv(t)
			a := e.seed(t, day, "10:00", "10:30", status)

			_, err := e.uc.Execute(context.Background(), request(a.ID, nextDay, "15:00", "15:30"))
			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), request(404, nextDay, "15:00", "15:30"))
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv(t)
	a := e.seed(t, day, "10:00", "10:30", domain.StatusNew)

	_, err := e.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Date: nextDay, Actor: "user-42"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.uc.Execute(context.Background(), request(a.ID, nextDay, "15:10", "15:40"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
