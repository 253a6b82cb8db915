package save_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса персонала на создание/редактирование записи
// ID == 0 - создание новой записи
type Request struct {
	Actor       domain.Actor
	ID          int64
	PatientID   int64
	DoctorID    int64
	SpecialtyID int64
	Date        time.Time
	Time        types.TimeString
	State       domain.AppointmentState
	Reason      *string
	Notes       *string
}

// IsCreate возвращает true для создания новой записи
func (r *Request) IsCreate() bool {
	return r.ID == 0
}

// Response модель ответа с сохраненной записью
type Response struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	SpecialtyID int64
	Date        time.Time
	Time        types.TimeString
	State       domain.AppointmentState
	Reason      *string
	Notes       *string
	Created     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func newResponse(a *domain.Appointment, created bool) *Response {
	return &Response{
		ID:          a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		SpecialtyID: a.SpecialtyID,
		Date:        a.Date,
		Time:        a.Time,
		State:       a.State,
		Reason:      a.Reason,
		Notes:       a.Notes,
		Created:     created,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
