package request_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
)

// DoctorDirectory источник данных о врачах и их окнах приема
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, doctorID int64) (*domain.Doctor, error)
	WindowsFor(ctx context.Context, target models.Target, date time.Time) ([]*domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	Find(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SlotLocker распределенная блокировка слота
type SlotLocker interface {
	WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics доменные счетчики
type Metrics interface {
	IncAppointmentRequest(source, result string)
	IncSlotConflict(policy, state string)
	IncSlotLockContention()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
