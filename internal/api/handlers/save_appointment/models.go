package save_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	saveAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SaveAppointmentRequest HTTP request model
// State по умолчанию active: персонал записывает сразу подтвержденный прием
type SaveAppointmentRequest struct {
	PatientID   int64   `json:"patientId"`
	DoctorID    int64   `json:"doctorId"`
	SpecialtyID int64   `json:"specialtyId"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	State       string  `json:"state,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patientId"`
	DoctorID    int64     `json:"doctorId"`
	SpecialtyID int64     `json:"specialtyId"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	State       string    `json:"state"`
	Reason      *string   `json:"reason,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case (id == 0 - создание)
func (r *SaveAppointmentRequest) ToUseCaseRequest(actor domain.Actor, id int64) (*saveAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	state := domain.StateActive
	if r.State != "" {
		state, err = domain.ParseState(r.State)
		if err != nil {
			return nil, err
		}
	}

	return &saveAppointment.Request{
		Actor:       actor,
		ID:          id,
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		SpecialtyID: r.SpecialtyID,
		Date:        date,
		Time:        slotTime,
		State:       state,
		Reason:      r.Reason,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *saveAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		PatientID:   resp.PatientID,
		DoctorID:    resp.DoctorID,
		SpecialtyID: resp.SpecialtyID,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.Time.String(),
		State:       resp.State.String(),
		Reason:      resp.Reason,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}
