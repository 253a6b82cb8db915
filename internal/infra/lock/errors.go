package lock

import "errors"

var (
	// ErrLockNotAcquired возвращается, когда слот уже заблокирован другим запросом
	ErrLockNotAcquired = errors.New("lock: slot lock not acquired")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("lock: redis error")
)
