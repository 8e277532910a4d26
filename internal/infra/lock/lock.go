// Package lock блокировки дня практикующего, которые берутся до транзакции бронирования.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/keylock"
)

// Key ключ блокировки для практикующего и даты
func Key(practitionerID int64, date time.Time) string {
	return fmt.Sprintf("practitioner:%d:day:%s", practitionerID, date.Format(domain.DateFormat))
}

// Local блокировка дня в пределах одного процесса
type Local struct {
	locker *keylock.Locker
}

// NewLocal создает блокировку в памяти процесса
func NewLocal() *Local {
	return &Local{locker: keylock.New()}
}

// LockDay блокирует день практикующего до вызова unlock или отмены контекста ожидания
func (l *Local) LockDay(ctx context.Context, practitionerID int64, date time.Time) (func(), error) {
	return l.locker.Lock(ctx, Key(practitionerID, date))
}

// Noop ничего не блокирует: используется, когда достаточно блокировки строки в БД
type Noop struct{}

// LockDay возвращает пустую функцию освобождения
func (Noop) LockDay(context.Context, int64, time.Time) (func(), error) {
	return func() {}, nil
}
