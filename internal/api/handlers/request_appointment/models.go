package request_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	requestAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/request_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RequestAppointmentRequest HTTP request model
type RequestAppointmentRequest struct {
	DoctorID    int64   `json:"doctorId"`
	SpecialtyID int64   `json:"specialtyId"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Reason      *string `json:"reason,omitempty"`
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
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
// Ошибка возвращается только при некорректном формате даты или времени
func (r *RequestAppointmentRequest) ToUseCaseRequest(patientID int64) (*requestAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &requestAppointment.Request{
		PatientID:   patientID,
		DoctorID:    r.DoctorID,
		SpecialtyID: r.SpecialtyID,
		Date:        date,
		Time:        slotTime,
		Reason:      r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		PatientID:   resp.PatientID,
		DoctorID:    resp.DoctorID,
		SpecialtyID: resp.SpecialtyID,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.Time.String(),
		State:       resp.State.String(),
		Reason:      resp.Reason,
		CreatedAt:   resp.CreatedAt,
	}
}
