package transition_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID int64
	Actor         domain.Actor
	TargetState   domain.AppointmentState
	Notes         *string // заметки врача/персонала, nil - без изменений
}

// Response модель ответа после смены статуса
type Response struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	Date        time.Time
	Time        types.TimeString
	FromState   domain.AppointmentState
	State       domain.AppointmentState
	RejectedIDs []int64 // pending заявки слота, отклоненные при подтверждении
}
