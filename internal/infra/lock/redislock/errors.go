package redislock

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить за время ожидания
	ErrLockTimeout = fmt.Errorf("redislock: wait timeout: %w", domain.ErrConcurrencyConflict)

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("redislock: redis error")
)
