package availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DoctorRepository интерфейс репозитория врачей и окон приема
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetSpecialty(ctx context.Context, id int64) (*domain.Specialty, error)
	ListActiveBySpecialty(ctx context.Context, specialtyID int64) ([]*domain.Doctor, error)
	ListWindows(ctx context.Context, doctorIDs []int64, weekday int) ([]*domain.AvailabilityWindow, error)
	UpsertWindow(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, doctorID, windowID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
