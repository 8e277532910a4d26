package compute_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrPractitionerNotFound возвращается, когда практикующий не найден в каталоге
	ErrPractitionerNotFound = fmt.Errorf("compute_availability: practitioner not found: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("compute_availability: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_availability: internal error")
)
