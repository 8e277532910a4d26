package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/shift"
	"github.com/m04kA/SMC-HomeBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

var day = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func newAppointment(start, end types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		PractitionerID:  7,
		ServiceID:       3,
		DurationMinutes: 60,
		Date:            day,
		WindowStart:     start,
		WindowEnd:       end,
		ClientCount:     1,
	}
}

func TestAppointmentRepository_CreateAndList(t *testing.T) {
	store := NewStore()
	repo := NewAppointmentRepository(store)
	ctx := context.Background()

	late, err := repo.Create(ctx, newAppointment("14:00", "14:30"))
	require.NoError(t, err)
	early, err := repo.Create(ctx, newAppointment("10:00", "10:30"))
	require.NoError(t, err)
	cancelled := newAppointment("12:00", "12:30")
	cancelled.Status = domain.StatusCancelled
	_, err = repo.Create(ctx, cancelled)
	require.NoError(t, err)

	list, err := repo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{PractitionerID: 7, Date: day})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)

	all, err := repo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{PractitionerID: 7, Date: day, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAppointmentRepository_ReturnsCopies(t *testing.T) {
	repo := NewAppointmentRepository(NewStore())
	ctx := context.Background()

	created, err := repo.Create(ctx, newAppointment("10:00", "10:30"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	got.Status = domain.StatusCompleted

	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, again.Status)
}

func TestAppointmentRepository_NotFound(t *testing.T) {
	repo := NewAppointmentRepository(NewStore())

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), &domain.Appointment{ID: 42}), domain.ErrAppointmentNotFound)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	store := NewStore()
	repo := NewAppointmentRepository(store)
	holds := NewHoldRepository(store)
	tm := NewTxManager(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tm.DoSerializable(ctx, func(ctx context.Context) error {
		a, err := repo.Create(ctx, newAppointment("10:00", "10:30"))
		if err != nil {
			return err
		}
		h, err := domain.NewScheduleHold(a)
		if err != nil {
			return err
		}
		if err := holds.Hold(ctx, h); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{PractitionerID: 7, Date: day, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Empty(t, list)

	// окно свободно: метка откатилась вместе с записью
	require.NoError(t, holds.Hold(ctx, &domain.ScheduleHold{AppointmentID: 99, PractitionerID: 7, Date: day, WindowStart: "10:00", WindowEnd: "10:30"}))
}

func TestTxManager_CommitsAndNests(t *testing.T) {
	store := NewStore()
	repo := NewAppointmentRepository(store)
	tm := NewTxManager(store)
	ctx := context.Background()

	err := tm.Do(ctx, func(ctx context.Context) error {
		return tm.DoSerializable(ctx, func(ctx context.Context) error {
			_, err := repo.Create(ctx, newAppointment("10:00", "10:30"))
			return err
		})
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), got.WindowStart)
}

func TestTxManager_SerializesAcrossPractitioners(t *testing.T) {
	store := NewStore()
	repo := NewAppointmentRepository(store)
	tm := NewTxManager(store)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- tm.DoSerializable(ctx, func(ctx context.Context) error {
			close(entered)
			<-release
			_, err := repo.Create(ctx, newAppointment("10:00", "10:30"))
			return err
		})
	}()
	<-entered

	secondDone := make(chan error, 1)
	go func() {
		secondDone <- tm.Do(ctx, func(ctx context.Context) error {
			other := newAppointment("12:00", "12:30")
			other.PractitionerID = 8
			_, err := repo.Create(ctx, other)
			return err
		})
	}()

	// другой мастер, но транзакция ждёт первую
	select {
	case <-secondDone:
		t.Fatal("second transaction ran while the first one held the store")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.PractitionerID)
}

func TestHoldRepository(t *testing.T) {
	store := NewStore()
	holds := NewHoldRepository(store)
	ctx := context.Background()

	first := &domain.ScheduleHold{AppointmentID: 1, PractitionerID: 7, Date: day, WindowStart: "10:00", WindowEnd: "10:30"}
	require.NoError(t, holds.Hold(ctx, first))

	second := &domain.ScheduleHold{AppointmentID: 2, PractitionerID: 7, Date: day, WindowStart: "10:00", WindowEnd: "10:30"}
	err := holds.Hold(ctx, second)
	assert.ErrorIs(t, err, hold.ErrWindowTaken)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	other := &domain.ScheduleHold{AppointmentID: 3, PractitionerID: 8, Date: day, WindowStart: "10:00", WindowEnd: "10:30"}
	require.NoError(t, holds.Hold(ctx, other))

	require.NoError(t, holds.Release(ctx, 1, time.Now()))
	require.NoError(t, holds.Hold(ctx, second))

	moved := *second
	moved.WindowStart, moved.WindowEnd = "12:00", "12:30"
	require.NoError(t, holds.Move(ctx, &moved))
	assert.ErrorIs(t, holds.Move(ctx, first), hold.ErrHoldNotFound)
}

func TestShiftRepository(t *testing.T) {
	store := NewStore()
	shifts := NewShiftRepository(store)
	ctx := context.Background()

	_, err := shifts.GetByPractitionerAndDate(ctx, 7, day)
	assert.ErrorIs(t, err, shift.ErrOverrideNotFound)

	created, err := shifts.Upsert(ctx, &domain.ShiftOverride{PractitionerID: 7, Date: day, DayOff: true, UpdatedBy: "admin"})
	require.NoError(t, err)

	replaced, err := shifts.Upsert(ctx, &domain.ShiftOverride{
		PractitionerID: 7,
		Date:           day,
		Start:          ptr.Ptr(types.TimeString("12:00")),
		End:            ptr.Ptr(types.TimeString("16:00")),
		UpdatedBy:      "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)

	got, err := shifts.GetByPractitionerAndDate(ctx, 7, day)
	require.NoError(t, err)
	assert.False(t, got.DayOff)

	list, err := shifts.ListByPractitioner(ctx, 7, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, shifts.Delete(ctx, 7, day))
	assert.ErrorIs(t, shifts.Delete(ctx, 7, day), shift.ErrOverrideNotFound)
}
