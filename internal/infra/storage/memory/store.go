// Package memory хранилище записей в памяти процесса для драйвера "memory".
// Транзакция удерживает общий мьютекс хранилища и откатывается к снимку состояния при ошибке.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

type txKey struct{}

type overrideKey struct {
	practitionerID int64
	date           string
}

type state struct {
	appointments  map[int64]*domain.Appointment
	history       map[int64][]*domain.StatusChange
	holds         map[int64]*domain.ScheduleHold
	overrides     map[overrideKey]*domain.ShiftOverride
	nextID        int64
	nextHistoryID int64
}

func newState() *state {
	return &state{
		appointments: make(map[int64]*domain.Appointment),
		history:      make(map[int64][]*domain.StatusChange),
		holds:        make(map[int64]*domain.ScheduleHold),
		overrides:    make(map[overrideKey]*domain.ShiftOverride),
	}
}

func (s *state) clone() *state {
	c := &state{
		appointments:  make(map[int64]*domain.Appointment, len(s.appointments)),
		history:       make(map[int64][]*domain.StatusChange, len(s.history)),
		holds:         make(map[int64]*domain.ScheduleHold, len(s.holds)),
		overrides:     make(map[overrideKey]*domain.ShiftOverride, len(s.overrides)),
		nextID:        s.nextID,
		nextHistoryID: s.nextHistoryID,
	}
	for id, a := range s.appointments {
		c.appointments[id] = copyAppointment(a)
	}
	for id, changes := range s.history {
		c.history[id] = append([]*domain.StatusChange(nil), changes...)
	}
	for id, h := range s.holds {
		hc := *h
		c.holds[id] = &hc
	}
	for k, o := range s.overrides {
		oc := *o
		c.overrides[k] = &oc
	}
	return c
}

// Store общее состояние всех репозиториев в памяти
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{state: newState(), now: time.Now}
}

// do выполняет fn под мьютексом хранилища, если вызывающий ещё не внутри транзакции
func (s *Store) do(ctx context.Context, fn func(st *state) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// TxManager менеджер транзакций поверх Store.
// Все транзакции идут по очереди под одним мьютексом хранилища, а не по ключу
// (мастер, дата): драйвер memory предназначен только для локального запуска и тестов.
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций для хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Do выполняет fn атомарно относительно остальных операций хранилища
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable совпадает с Do: транзакции хранилища и так выполняются строго по очереди
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snapshot := m.store.state.clone()
	defer func() {
		if p := recover(); p != nil {
			m.store.state = snapshot
			panic(p)
		}
		if err != nil {
			m.store.state = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

func copyAppointment(a *domain.Appointment) *domain.Appointment {
	c := *a
	if a.Confirmation != nil {
		d := *a.Confirmation
		c.Confirmation = &d
	}
	if a.Quality != nil {
		q := *a.Quality
		c.Quality = &q
	}
	return &c
}
