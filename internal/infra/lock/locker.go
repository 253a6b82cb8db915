package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const keyPrefix = "lock:slot:"

// unlockScript удаляет ключ, только если он все еще принадлежит нашему токену
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

// RedisLocker блокировка слота (doctor, date, time) через SET NX PX
// Защищает от параллельных попыток забронировать один слот на разных инстансах;
// окончательную гарантию дает уникальный индекс в БД
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker создает блокировщик слотов
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// WithSlotLock выполняет fn, удерживая блокировку слота
// Если слот уже заблокирован, fn не вызывается и возвращается ErrLockNotAcquired
func (l *RedisLocker) WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error {
	redisKey := SlotLockKey(key)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: acquire slot lock %s: %v", ErrRedis, redisKey, err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// контекст запроса мог быть уже отменен, освобождаем блокировку независимо от него
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = l.release(releaseCtx, redisKey, token)
	}()

	lockedCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockedCtx)
}

// Ping проверяет доступность Redis (readiness)
func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: release slot lock %s: %v", ErrRedis, key, err)
	}
	return nil
}

// SlotLockKey ключ блокировки слота: lock:slot:<doctor>:<date>:<time>
func SlotLockKey(key domain.SlotKey) string {
	return keyPrefix + key.String()
}
