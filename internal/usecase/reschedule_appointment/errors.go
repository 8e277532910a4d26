package reschedule_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("reschedule_appointment: %w", domain.ErrAppointmentNotFound)

	// ErrNotReschedulable возвращается, когда статус записи не допускает перенос
	ErrNotReschedulable = fmt.Errorf("reschedule_appointment: %w", domain.ErrInvalidStateTransition)

	// ErrPractitionerNotFound возвращается, когда практикующий записи не найден в каталоге
	ErrPractitionerNotFound = fmt.Errorf("reschedule_appointment: practitioner not found: %w", domain.ErrValidation)

	// ErrPractitionerInactive возвращается, когда практикующий не принимает записи
	ErrPractitionerInactive = fmt.Errorf("reschedule_appointment: practitioner is inactive: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_appointment: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
