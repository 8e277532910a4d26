package shifts

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrPractitionerNotFound возвращается, когда практикующий не найден в каталоге
	ErrPractitionerNotFound = fmt.Errorf("shifts: practitioner not found: %w", domain.ErrValidation)

	// ErrOverrideNotFound возвращается, когда переопределение смены не задано
	ErrOverrideNotFound = errors.New("shifts: override not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("shifts: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("shifts: internal error")
)
