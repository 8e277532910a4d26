package reserve_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HomeBookingService/pkg/txmanager"
)

const (
	operationName = "reserve"

	// maxAttempts число попыток при проигрыше конкурентной транзакции
	maxAttempts = 2
)

// UseCase use case бронирования визита на окно прибытия
type UseCase struct {
	appointmentRepo AppointmentRepository
	holdRepo        HoldRepository
	dayLockRepo     DayLockRepository
	dayLocker       DayLocker
	catalogClient   CatalogClient
	shiftResolver   ShiftResolver
	txManager       TransactionManager
	notifier        Notifier
	outcomes        OutcomeObserver
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	holdRepo HoldRepository,
	dayLockRepo DayLockRepository,
	dayLocker DayLocker,
	catalogClient CatalogClient,
	shiftResolver ShiftResolver,
	txManager TransactionManager,
	notifier Notifier,
	outcomes OutcomeObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		holdRepo:        holdRepo,
		dayLockRepo:     dayLockRepo,
		dayLocker:       dayLocker,
		catalogClient:   catalogClient,
		shiftResolver:   shiftResolver,
		txManager:       txManager,
		notifier:        notifier,
		outcomes:        outcomes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute бронирует окно прибытия.
// Повторная проверка доступности и создание записи выполняются под блокировкой дня
// практикующего в сериализуемой транзакции, поэтому два клиента не получат одно окно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("ReserveAppointment: practitioner=%d, service=%d, date=%s, window=%s-%s, duration=%d, clients=%d, actor=%s",
		req.PractitionerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Window.Start, req.Window.End,
		req.DurationMinutes, req.ClientCount, req.Actor)

	appointment, err := uc.execute(ctx, req)
	uc.observe(err)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(ctx, notifications.NewAppointmentEvent(
		notifications.EventAppointmentCreated, appointment, req.Actor, appointment.CreatedAt))

	uc.logger.Info("ReserveAppointment: appointment id=%d reserved for practitioner=%d on %s %s-%s",
		appointment.ID, appointment.PractitionerID, appointment.Date.Format(domain.DateFormat),
		appointment.WindowStart, appointment.WindowEnd)
	return appointment, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Справочные данные каталога
	practitioner, err := uc.catalogClient.GetPractitioner(ctx, req.PractitionerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPractitionerNotFound) {
			uc.logger.Warn("ReserveAppointment: practitioner id=%d not found", req.PractitionerID)
			return nil, ErrPractitionerNotFound
		}
		uc.logger.Error("ReserveAppointment: failed to get practitioner id=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	service, err := uc.catalogClient.GetServiceOffering(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ReserveAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ReserveAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	variant, err := validateCatalog(req, practitioner, service)
	if err != nil {
		uc.logger.Warn("ReserveAppointment: practitioner=%d, service=%d: %v", req.PractitionerID, req.ServiceID, err)
		return nil, err
	}

	// 3. Действующая смена
	shift, err := uc.shiftResolver.EffectiveShift(ctx, practitioner, req.Date)
	if err != nil {
		uc.logger.Error("ReserveAppointment: failed to resolve shift for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to resolve shift: %v", ErrInternal, err)
	}

	// 4. Предварительная проверка без блокировки, чтобы отказ содержал точную причину
	if err := uc.checkWindow(ctx, req, shift, now, false); err != nil {
		return nil, err
	}

	draft := newAppointment(req, service.Name, variant.Price)

	// 5. Бронирование под блокировкой с одной повторной попыткой
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		appointment, err := uc.reserve(ctx, req, shift, draft, now)
		if err == nil {
			return appointment, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
		uc.logger.Warn("ReserveAppointment: attempt %d lost race for practitioner=%d %s %s: %v",
			attempt, req.PractitionerID, req.Date.Format(domain.DateFormat), req.Window.Start, err)
	}

	return nil, &domain.UnavailableError{
		Reason: domain.ReasonSlotOccupied,
		Cause:  fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, lastErr),
	}
}

// reserve одна попытка бронирования под блокировкой дня
func (uc *UseCase) reserve(
	ctx context.Context,
	req *Request,
	shift *domain.Shift,
	draft domain.Appointment,
	now time.Time,
) (*domain.Appointment, error) {
	unlock, err := uc.dayLocker.LockDay(ctx, req.PractitionerID, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			return nil, err
		}
		uc.logger.Error("ReserveAppointment: failed to lock day for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to lock day: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.dayLockRepo.Acquire(txCtx, req.PractitionerID, req.Date); err != nil {
			return fmt.Errorf("%w: failed to acquire day lock: %w", ErrInternal, err)
		}

		if err := uc.checkWindow(txCtx, req, shift, now, true); err != nil {
			return err
		}

		appointment := draft
		created, err := uc.appointmentRepo.Create(txCtx, &appointment)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		hold, err := domain.NewScheduleHold(created)
		if err != nil {
			return fmt.Errorf("%w: failed to build schedule hold: %v", ErrInternal, err)
		}
		if err := uc.holdRepo.Hold(txCtx, hold); err != nil {
			return fmt.Errorf("%w: failed to hold window: %w", ErrInternal, err)
		}

		if err := uc.appointmentRepo.AppendHistory(txCtx, domain.NewCreatedChange(created, req.Actor, now)); err != nil {
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if !isRetryable(err) && !errors.Is(err, domain.ErrUnavailable) {
			uc.logger.Error("ReserveAppointment: transaction failed for practitioner=%d: %v", req.PractitionerID, err)
		}
		return nil, err
	}

	return result, nil
}

// checkWindow проверяет окно по текущим записям дня.
// Под блокировкой конфликт с соседним визитом означает, что окно заняли конкурентно.
func (uc *UseCase) checkWindow(ctx context.Context, req *Request, shift *domain.Shift, now time.Time, locked bool) error {
	appointments, err := uc.appointmentRepo.ListByPractitionerAndDate(ctx, domain.AppointmentsFilter{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
	})
	if err != nil {
		uc.logger.Error("ReserveAppointment: failed to list appointments for practitioner=%d: %v", req.PractitionerID, err)
		return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}

	result, err := availability.Check(availability.DayInput{
		Date:            req.Date,
		Shift:           *shift,
		Appointments:    appointments,
		DurationMinutes: req.DurationMinutes,
		ClientCount:     req.ClientCount,
		Now:             now,
	}, req.Window)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("ReserveAppointment: rejected input: %v", err)
			return err
		}
		return fmt.Errorf("%w: check failed: %v", ErrInternal, err)
	}
	if result.Available {
		return nil
	}

	reason := result.Reason
	if locked && lostRace(reason) {
		reason = domain.ReasonSlotOccupied
	}
	uc.logger.Info("ReserveAppointment: window %s-%s unavailable for practitioner=%d, reason=%s",
		req.Window.Start, req.Window.End, req.PractitionerID, reason)
	return domain.NewUnavailableError(reason)
}

func (uc *UseCase) observe(err error) {
	switch {
	case err == nil:
		uc.outcomes.ObserveBookingOutcome(operationName, "success", "")
	case errors.Is(err, domain.ErrUnavailable):
		reason, _ := domain.ReasonOf(err)
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", string(reason))
	case errors.Is(err, domain.ErrValidation):
		uc.outcomes.ObserveBookingOutcome(operationName, "rejected", "validation")
	default:
		uc.outcomes.ObserveBookingOutcome(operationName, "error", "")
	}
}

func newAppointment(req *Request, serviceName string, price float64) domain.Appointment {
	return domain.Appointment{
		PractitionerID:  req.PractitionerID,
		ServiceID:       req.ServiceID,
		DurationMinutes: req.DurationMinutes,
		Date:            req.Date,
		WindowStart:     req.Window.Start,
		WindowEnd:       req.Window.End,
		Status:          domain.StatusNew,
		PaymentStatus:   domain.PaymentNotPaid,
		ClientCount:     req.ClientCount,
		PressureLevel:   req.PressureLevel,
		Client:          req.Client,
		ServiceName:     serviceName,
		ServicePrice:    price,
		Notes:           req.Notes,
	}
}

// isRetryable сообщает, что транзакция проиграла конкурентной и попытку можно повторить
func isRetryable(err error) bool {
	return errors.Is(err, domain.ErrConcurrencyConflict) || txmanager.IsSerializationFailure(err)
}
