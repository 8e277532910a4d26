package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/appointment"
)

// AppointmentRepository записи на визит в памяти
type AppointmentRepository struct {
	store *Store
}

// NewAppointmentRepository создает репозиторий записей поверх хранилища
func NewAppointmentRepository(store *Store) *AppointmentRepository {
	return &AppointmentRepository{store: store}
}

// Create сохраняет новую запись и назначает ей ID
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	err := r.store.do(ctx, func(st *state) error {
		st.nextID++
		now := r.store.now()
		a.ID = st.nextID
		a.CreatedAt = now
		a.UpdatedAt = now
		st.appointments[a.ID] = copyAppointment(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID получает копию записи
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var out *domain.Appointment
	err := r.store.do(ctx, func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return appointment.ErrAppointmentNotFound
		}
		out = copyAppointment(a)
		return nil
	})
	return out, err
}

// GetByIDForUpdate совпадает с GetByID: транзакция уже удерживает хранилище целиком
func (r *AppointmentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.GetByID(ctx, id)
}

// ListByPractitionerAndDate получает записи практикующего на дату по возрастанию окна
func (r *AppointmentRepository) ListByPractitionerAndDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	day := filter.Date.Format(domain.DateFormat)
	out := make([]*domain.Appointment, 0)

	err := r.store.do(ctx, func(st *state) error {
		for _, a := range st.appointments {
			if a.PractitionerID != filter.PractitionerID || a.Date.Format(domain.DateFormat) != day {
				continue
			}
			if !filter.IncludeCancelled && a.Status == domain.StatusCancelled {
				continue
			}
			out = append(out, copyAppointment(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].WindowStart != out[j].WindowStart {
			return out[i].WindowStart.IsBefore(out[j].WindowStart)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateStatus сохраняет статус и отметки подтверждения/отмены
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	return r.update(ctx, a.ID, func(stored *domain.Appointment) {
		stored.Status = a.Status
		stored.ConfirmedBy = a.ConfirmedBy
		stored.ConfirmedAt = a.ConfirmedAt
		stored.CancelledBy = a.CancelledBy
		stored.CancelledAt = a.CancelledAt
		stored.CancellationReason = a.CancellationReason
		stored.UpdatedAt = a.UpdatedAt
	})
}

// UpdatePayment сохраняет статус оплаты
func (r *AppointmentRepository) UpdatePayment(ctx context.Context, a *domain.Appointment) error {
	return r.update(ctx, a.ID, func(stored *domain.Appointment) {
		stored.PaymentStatus = a.PaymentStatus
		stored.PaymentRef = a.PaymentRef
		stored.UpdatedAt = a.UpdatedAt
	})
}

// UpdateSchedule сохраняет новую дату и окно прибытия
func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, a *domain.Appointment) error {
	return r.update(ctx, a.ID, func(stored *domain.Appointment) {
		stored.Date = a.Date
		stored.WindowStart = a.WindowStart
		stored.WindowEnd = a.WindowEnd
		stored.UpdatedAt = a.UpdatedAt
	})
}

// UpsertConfirmation сохраняет детали подтверждения
func (r *AppointmentRepository) UpsertConfirmation(ctx context.Context, appointmentID int64, d *domain.ConfirmationDetails) error {
	c := *d
	return r.update(ctx, appointmentID, func(stored *domain.Appointment) {
		stored.Confirmation = &c
	})
}

// UpsertQuality сохраняет отзыв о визите
func (r *AppointmentRepository) UpsertQuality(ctx context.Context, appointmentID int64, q *domain.QualityRecord) error {
	c := *q
	return r.update(ctx, appointmentID, func(stored *domain.Appointment) {
		stored.Quality = &c
	})
}

// AppendHistory добавляет запись в журнал изменений
func (r *AppointmentRepository) AppendHistory(ctx context.Context, change *domain.StatusChange) error {
	return r.store.do(ctx, func(st *state) error {
		st.nextHistoryID++
		change.ID = st.nextHistoryID
		c := *change
		st.history[change.AppointmentID] = append(st.history[change.AppointmentID], &c)
		return nil
	})
}

// ListHistory получает журнал изменений записи в порядке добавления
func (r *AppointmentRepository) ListHistory(ctx context.Context, appointmentID int64) ([]*domain.StatusChange, error) {
	out := make([]*domain.StatusChange, 0)
	err := r.store.do(ctx, func(st *state) error {
		for _, c := range st.history[appointmentID] {
			cc := *c
			out = append(out, &cc)
		}
		return nil
	})
	return out, err
}

func (r *AppointmentRepository) update(ctx context.Context, id int64, apply func(stored *domain.Appointment)) error {
	return r.store.do(ctx, func(st *state) error {
		stored, ok := st.appointments[id]
		if !ok {
			return appointment.ErrAppointmentNotFound
		}
		apply(stored)
		return nil
	})
}
