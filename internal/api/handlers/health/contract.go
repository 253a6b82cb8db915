package health

import "context"

// Pinger зависимость, готовность которой проверяется (БД, Redis)
type Pinger interface {
	Ping(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
