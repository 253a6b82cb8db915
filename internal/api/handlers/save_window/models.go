package save_window

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SaveWindowRequest HTTP request model
// weekday: 0 - понедельник ... 6 - воскресенье
type SaveWindowRequest struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Active  *bool  `json:"active,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SaveWindowRequest) ToServiceRequest(actor domain.Actor, doctorID int64) (*models.SaveWindowRequest, error) {
	start, err := types.NewTimeStringFromString(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.End)
	if err != nil {
		return nil, err
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &models.SaveWindowRequest{
		Actor:    actor,
		DoctorID: doctorID,
		Weekday:  r.Weekday,
		Start:    start,
		End:      end,
		Active:   active,
	}, nil
}
