package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/storage/shift"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// HoldRepository метки занятости расписания в памяти
type HoldRepository struct {
	store *Store
}

// NewHoldRepository создает репозиторий меток поверх хранилища
func NewHoldRepository(store *Store) *HoldRepository {
	return &HoldRepository{store: store}
}

// Hold ставит метку; активная метка того же практикующего на то же окно даёт ErrWindowTaken
func (r *HoldRepository) Hold(ctx context.Context, h *domain.ScheduleHold) error {
	return r.store.do(ctx, func(st *state) error {
		if taken(st, h) {
			return fmt.Errorf("%w: practitioner %d, %s %s", hold.ErrWindowTaken, h.PractitionerID, h.Date.Format(domain.DateFormat), h.WindowStart)
		}
		c := *h
		c.ReleasedAt = nil
		st.holds[h.AppointmentID] = &c
		return nil
	})
}

// Release снимает активную метку записи
func (r *HoldRepository) Release(ctx context.Context, appointmentID int64, at time.Time) error {
	return r.store.do(ctx, func(st *state) error {
		if h, ok := st.holds[appointmentID]; ok && h.ReleasedAt == nil {
			released := at
			h.ReleasedAt = &released
		}
		return nil
	})
}

// Move переносит активную метку записи
func (r *HoldRepository) Move(ctx context.Context, h *domain.ScheduleHold) error {
	return r.store.do(ctx, func(st *state) error {
		stored, ok := st.holds[h.AppointmentID]
		if !ok || stored.ReleasedAt != nil {
			return hold.ErrHoldNotFound
		}
		if taken(st, h) {
			return fmt.Errorf("%w: practitioner %d, %s %s", hold.ErrWindowTaken, h.PractitionerID, h.Date.Format(domain.DateFormat), h.WindowStart)
		}
		stored.Date = h.Date
		stored.WindowStart = h.WindowStart
		stored.WindowEnd = h.WindowEnd
		stored.BusyFrom = h.BusyFrom
		stored.BusyUntil = h.BusyUntil
		return nil
	})
}

func taken(st *state, h *domain.ScheduleHold) bool {
	day := h.Date.Format(domain.DateFormat)
	start := windowStartOf(h.WindowStart)
	for id, other := range st.holds {
		if id == h.AppointmentID || other.ReleasedAt != nil || other.PractitionerID != h.PractitionerID {
			continue
		}
		if other.Date.Format(domain.DateFormat) == day && windowStartOf(other.WindowStart) == start {
			return true
		}
	}
	return false
}

func windowStartOf(t types.TimeString) int {
	m, _ := t.Minutes()
	return m
}

// DayLockRepository блокировка дня для хранилища в памяти.
// Транзакция уже удерживает хранилище целиком, поэтому Acquire ничего не делает.
type DayLockRepository struct{}

// NewDayLockRepository создает репозиторий блокировок дня
func NewDayLockRepository() *DayLockRepository {
	return &DayLockRepository{}
}

// Acquire ничего не делает
func (DayLockRepository) Acquire(context.Context, int64, time.Time) error {
	return nil
}

// ShiftRepository переопределения смен в памяти
type ShiftRepository struct {
	store *Store
}

// NewShiftRepository создает репозиторий смен поверх хранилища
func NewShiftRepository(store *Store) *ShiftRepository {
	return &ShiftRepository{store: store}
}

// GetByPractitionerAndDate получает переопределение смены на дату
func (r *ShiftRepository) GetByPractitionerAndDate(ctx context.Context, practitionerID int64, date time.Time) (*domain.ShiftOverride, error) {
	var out *domain.ShiftOverride
	err := r.store.do(ctx, func(st *state) error {
		o, ok := st.overrides[overrideKey{practitionerID, date.Format(domain.DateFormat)}]
		if !ok {
			return shift.ErrOverrideNotFound
		}
		c := *o
		out = &c
		return nil
	})
	return out, err
}

// ListByPractitioner получает переопределения в диапазоне дат включительно
func (r *ShiftRepository) ListByPractitioner(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.ShiftOverride, error) {
	lo, hi := from.Format(domain.DateFormat), to.Format(domain.DateFormat)
	out := make([]*domain.ShiftOverride, 0)
	err := r.store.do(ctx, func(st *state) error {
		for k, o := range st.overrides {
			if k.practitionerID == practitionerID && k.date >= lo && k.date <= hi {
				c := *o
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, err
}

// Upsert создает или заменяет переопределение смены
func (r *ShiftRepository) Upsert(ctx context.Context, o *domain.ShiftOverride) (*domain.ShiftOverride, error) {
	err := r.store.do(ctx, func(st *state) error {
		key := overrideKey{o.PractitionerID, o.Date.Format(domain.DateFormat)}
		now := r.store.now()
		if existing, ok := st.overrides[key]; ok {
			o.ID = existing.ID
			o.CreatedAt = existing.CreatedAt
		} else {
			st.nextID++
			o.ID = st.nextID
			o.CreatedAt = now
		}
		o.UpdatedAt = now
		c := *o
		st.overrides[key] = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Delete удаляет переопределение смены
func (r *ShiftRepository) Delete(ctx context.Context, practitionerID int64, date time.Time) error {
	return r.store.do(ctx, func(st *state) error {
		key := overrideKey{practitionerID, date.Format(domain.DateFormat)}
		if _, ok := st.overrides[key]; !ok {
			return shift.ErrOverrideNotFound
		}
		delete(st.overrides, key)
		return nil
	})
}
