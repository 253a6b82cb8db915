package request_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса пациента на запись
type Request struct {
	PatientID   int64            // ID пациента
	DoctorID    int64            // ID врача
	SpecialtyID int64            // ID специальности
	Date        time.Time        // Дата приема (без времени)
	Time        types.TimeString // Начало слота, например "09:30"
	Reason      *string          // Причина обращения (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	SpecialtyID int64
	Date        time.Time
	Time        types.TimeString
	State       domain.AppointmentState
	Reason      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func newResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:          a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		SpecialtyID: a.SpecialtyID,
		Date:        a.Date,
		Time:        a.Time,
		State:       a.State,
		Reason:      a.Reason,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
