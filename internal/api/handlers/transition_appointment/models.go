package transition_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	State string  `json:"state"`
	Notes *string `json:"notes,omitempty"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	ID          int64   `json:"id"`
	PatientID   int64   `json:"patientId"`
	DoctorID    int64   `json:"doctorId"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	FromState   string  `json:"fromState"`
	State       string  `json:"state"`
	RejectedIDs []int64 `json:"rejectedIds,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *TransitionRequest) ToUseCaseRequest(actor domain.Actor, appointmentID int64) (*transitionAppointment.Request, error) {
	state, err := domain.ParseState(r.State)
	if err != nil {
		return nil, err
	}

	return &transitionAppointment.Request{
		AppointmentID: appointmentID,
		Actor:         actor,
		TargetState:   state,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionAppointment.Response) *TransitionResponse {
	return &TransitionResponse{
		ID:          resp.ID,
		PatientID:   resp.PatientID,
		DoctorID:    resp.DoctorID,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.Time.String(),
		FromState:   resp.FromState.String(),
		State:       resp.State.String(),
		RejectedIDs: resp.RejectedIDs,
	}
}
