package check_window

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrPractitionerNotFound возвращается, когда практикующий не найден в каталоге
	ErrPractitionerNotFound = fmt.Errorf("check_window: practitioner not found: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("check_window: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_window: internal error")
)
