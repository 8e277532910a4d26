package availability

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// ErrInvalidInput wraps domain.ErrValidation for malformed calculator input
var ErrInvalidInput = fmt.Errorf("availability: %w", domain.ErrValidation)
