package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
)

// AvailabilityResolver источник окон приема врача или специальности
type AvailabilityResolver interface {
	WindowsFor(ctx context.Context, target models.Target, date time.Time) ([]*domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	Find(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
