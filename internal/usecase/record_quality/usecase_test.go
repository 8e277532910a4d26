package record_quality

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
	"github.com/m04kA/SMC-HomeBookingService/pkg/ptr"
)

func setup(t *testing.T, status domain.AppointmentStatus) (*UseCase, *memory.AppointmentRepository, int64) {
	t.Helper()

	store := memory.NewStore()
	repo := memory.NewAppointmentRepository(store)
	a, err := repo.Create(context.Background(), &domain.Appointment{
		PractitionerID:  7,
		ServiceID:       3,
		DurationMinutes: 60,
		Date:            time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		WindowStart:     "10:00",
		WindowEnd:       "10:30",
		Status:          status,
		PaymentStatus:   domain.PaymentPaid,
		ClientCount:     1,
	})
	require.NoError(t, err)

	return NewUseCase(repo, memory.NewTxManager(store), logger.NewNop()), repo, a.ID
}

func TestExecute_Completed(t *testing.T) {
	uc, repo, id := setup(t, domain.StatusCompleted)

	got, err := uc.Execute(context.Background(), &Request{
		AppointmentID: id, Rating: 5, Comment: ptr.Ptr("great"), Actor: "user-42",
	})
	require.NoError(t, err)
	require.NotNil(t, got.Quality)
	assert.Equal(t, 5, got.Quality.Rating)

	// повторный отзыв заменяет предыдущий
	_, err = uc.Execute(context.Background(), &Request{AppointmentID: id, Rating: 4, Actor: "user-42"})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored.Quality)
	assert.Equal(t, 4, stored.Quality.Rating)
	assert.Nil(t, stored.Quality.Comment)
}

func TestExecute_NotCompleted(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusNew, domain.StatusInProgress, domain.StatusCancelled} {
		t.Run(status.String(), func(t *testing.T) {
			uc, _, id := setup(t, status)

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: id, Rating: 5, Actor: "user-42"})
			assert.ErrorIs(t, err, ErrNotCompleted)
			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		})
	}
}

func TestExecute_RatingBounds(t *testing.T) {
	uc, _, id := setup(t, domain.StatusCompleted)

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Execute(context.Background(), &Request{AppointmentID: id, Rating: rating, Actor: "user-42"})
		assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", rating)
	}
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := setup(t, domain.StatusCompleted)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 404, Rating: 5, Actor: "user-42"})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}
