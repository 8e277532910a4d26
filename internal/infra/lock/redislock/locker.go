// Package redislock блокировка дня практикующего в Redis, общая для всех реплик сервиса.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HomeBookingService/internal/infra/lock"
)

const (
	keyPrefix = "smc-home-booking:lock:"

	// DefaultRetryInterval пауза между попытками взять занятую блокировку
	DefaultRetryInterval = 25 * time.Millisecond

	releaseTimeout = 2 * time.Second
)

// снимаем блокировку только если она всё ещё наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker блокировка через SET NX PX с уникальным токеном владельца
type Locker struct {
	client        redis.UniversalClient
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
	logger        Logger
}

// New создает Locker. ttl ограничивает время жизни блокировки, если процесс упал не сняв её.
func New(client redis.UniversalClient, ttl, wait time.Duration, logger Logger) *Locker {
	return &Locker{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: DefaultRetryInterval,
		logger:        logger,
	}
}

// LockDay блокирует день практикующего. Ждёт не дольше wait, затем возвращает ErrLockTimeout.
func (l *Locker) LockDay(ctx context.Context, practitionerID int64, date time.Time) (func(), error) {
	key := keyPrefix + lock.Key(practitionerID, date)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("%w: LockDay - set %s: %v", ErrRedis, key, err)
		}
		if ok {
			return l.unlockFunc(key, token), nil
		}

		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
	}
}

func (l *Locker) unlockFunc(key, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		released, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			l.logger.Error("redislock: failed to release %s: %v", key, err)
			return
		}
		if released == 0 {
			l.logger.Warn("redislock: lock %s expired before release", key)
		}
	}
}
