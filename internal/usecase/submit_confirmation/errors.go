package submit_confirmation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("submit_confirmation: %w", domain.ErrAppointmentNotFound)

	// ErrNotAccepting возвращается, когда статус записи не допускает подтверждение деталей
	ErrNotAccepting = fmt.Errorf("submit_confirmation: details are accepted only in new or confirming: %w", domain.ErrInvalidStateTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("submit_confirmation: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_confirmation: internal error")
)
