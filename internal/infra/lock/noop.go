package lock

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// NoopLocker используется, когда Redis выключен; безопасность обеспечивает только БД
type NoopLocker struct{}

func (NoopLocker) WithSlotLock(ctx context.Context, _ domain.SlotKey, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (NoopLocker) Ping(context.Context) error {
	return nil
}
