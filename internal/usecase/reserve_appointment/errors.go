package reserve_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrPractitionerNotFound возвращается, когда практикующий не найден в каталоге
	ErrPractitionerNotFound = fmt.Errorf("reserve_appointment: practitioner not found: %w", domain.ErrValidation)

	// ErrPractitionerInactive возвращается, когда практикующий не принимает записи
	ErrPractitionerInactive = fmt.Errorf("reserve_appointment: practitioner is inactive: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("reserve_appointment: service not found: %w", domain.ErrValidation)

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = fmt.Errorf("reserve_appointment: service is inactive: %w", domain.ErrValidation)

	// ErrServiceNotSupported возвращается, когда практикующий не оказывает услугу
	ErrServiceNotSupported = fmt.Errorf("reserve_appointment: service is not supported by practitioner: %w", domain.ErrValidation)

	// ErrDurationNotOffered возвращается, когда у услуги нет варианта с такой длительностью
	ErrDurationNotOffered = fmt.Errorf("reserve_appointment: duration is not offered for service: %w", domain.ErrValidation)

	// ErrPressureNotSupported возвращается, когда практикующий не работает с таким давлением
	ErrPressureNotSupported = fmt.Errorf("reserve_appointment: pressure level is not supported: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reserve_appointment: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_appointment: internal error")
)
