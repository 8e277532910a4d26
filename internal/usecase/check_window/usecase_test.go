package check_window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/memory"
	catalogClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

var day = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeCatalog struct{}

func (fakeCatalog) GetPractitioner(_ context.Context, id int64) (*domain.Practitioner, error) {
	if id != 7 {
		return nil, catalogClient.ErrPractitionerNotFound
	}
	return &domain.Practitioner{ID: 7, IsActive: true, ShiftStart: "09:00", ShiftEnd: "21:00"}, nil
}

func newUseCase(t *testing.T, now time.Time, booked ...*domain.Appointment) *UseCase {
	t.Helper()

	store := memory.NewStore()
	repo := memory.NewAppointmentRepository(store)
	for _, a := range booked {
		_, err := repo.Create(context.Background(), a)
		require.NoError(t, err)
	}
	log := logger.NewNop()

	uc := NewUseCase(repo, fakeCatalog{}, shifts.NewService(memory.NewShiftRepository(store), fakeCatalog{}, log), log)
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func request(start, end types.TimeString, duration int) *Request {
	return &Request{
		PractitionerID:  7,
		Date:            day,
		Window:          domain.ArrivalWindow{Start: start, End: end},
		DurationMinutes: duration,
		ClientCount:     1,
	}
}

func TestExecute(t *testing.T) {
	booked := &domain.Appointment{
		PractitionerID: 7, DurationMinutes: 60, Date: day, WindowStart: "12:00", WindowEnd: "12:30",
		Status: domain.StatusNew, ClientCount: 1,
	}
	dayBefore := time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		req       *Request
		available bool
		reason    domain.UnavailableReason
	}{
		{name: "free window", now: dayBefore, req: request("15:00", "15:30", 60), available: true},
		{name: "occupied", now: dayBefore, req: request("12:00", "12:30", 60), reason: domain.ReasonSlotOccupied},
		{name: "after booked visit", now: dayBefore, req: request("13:00", "13:30", 60), reason: domain.ReasonConflictWithPrevious},
		{name: "before booked visit", now: dayBefore, req: request("11:00", "11:30", 60), reason: domain.ReasonConflictWithNext},
		{name: "outside shift", now: dayBefore, req: request("07:00", "07:30", 60), reason: domain.ReasonExceedsShift},
		{name: "too soon", now: day.Add(14 * time.Hour), req: request("15:00", "15:30", 60), reason: domain.ReasonTooSoon},
		{name: "non-standard duration", now: dayBefore, req: request("15:00", "15:30", 50), reason: domain.ReasonDurationNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := *booked
			uc := newUseCase(t, tt.now, &b)

			got, err := uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.available, got.Available)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(t, time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), request("15:15", "15:45", 60))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), request("15:00", "16:00", 60))
	assert.ErrorIs(t, err, domain.ErrValidation)

	req := request("15:00", "15:30", 60)
	req.PractitionerID = 99
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}
