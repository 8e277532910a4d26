package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
)

var day = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *memory.AppointmentRepository) *domain.Appointment {
	t.Helper()
	ctx := context.Background()

	a, err := repo.Create(ctx, &domain.Appointment{
		PractitionerID:  7,
		ServiceID:       3,
		DurationMinutes: 60,
		Date:            day,
		WindowStart:     "10:00",
		WindowEnd:       "10:30",
		ClientCount:     1,
		Client:          domain.ClientInfo{Name: "Ivan", Phone: "+79001234567", Address: "Lenina 1"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.AppendHistory(ctx, domain.NewCreatedChange(a, "15", day)))

	cancelled, err := repo.Create(ctx, &domain.Appointment{
		PractitionerID: 7, Date: day, WindowStart: "14:00", WindowEnd: "14:30", Status: domain.StatusCancelled,
	})
	require.NoError(t, err)
	require.NotZero(t, cancelled.ID)
	return a
}

func TestGetByID(t *testing.T) {
	repo := memory.NewAppointmentRepository(memory.NewStore())
	a := seed(t, repo)
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-15", resp.Date)
	assert.Equal(t, "new", resp.Status)
	assert.Equal(t, "not_paid", resp.PaymentStatus)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "created", resp.History[0].Kind)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(memory.NewAppointmentRepository(memory.NewStore()), logger.NewNop())

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestListByPractitioner(t *testing.T) {
	repo := memory.NewAppointmentRepository(memory.NewStore())
	seed(t, repo)
	svc := NewService(repo, logger.NewNop())

	active, err := svc.ListByPractitioner(context.Background(), 7, day, false)
	require.NoError(t, err)
	assert.Equal(t, 1, active.Total)

	all, err := svc.ListByPractitioner(context.Background(), 7, day, true)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	_, err = svc.ListByPractitioner(context.Background(), 0, day, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
