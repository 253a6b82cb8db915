package save_window

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
)

type AvailabilityService interface {
	SaveWindow(ctx context.Context, req *models.SaveWindowRequest) (*models.WindowResponse, error)
	DeleteWindow(ctx context.Context, actor domain.Actor, doctorID, windowID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
