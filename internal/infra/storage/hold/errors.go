package hold

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrWindowTaken возвращается, когда у практикующего уже есть активная метка на это окно
	ErrWindowTaken = fmt.Errorf("hold.repository: window already held: %w", domain.ErrConcurrencyConflict)

	// ErrHoldNotFound возвращается, когда активная метка записи не найдена
	ErrHoldNotFound = errors.New("hold.repository: active hold not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hold.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hold.repository: failed to execute query")
)
