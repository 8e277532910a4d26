package record_quality

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("record_quality: %w", domain.ErrAppointmentNotFound)

	// ErrNotCompleted возвращается, когда визит ещё не завершён
	ErrNotCompleted = fmt.Errorf("record_quality: quality is recorded only for completed visits: %w", domain.ErrInvalidStateTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("record_quality: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_quality: internal error")
)
