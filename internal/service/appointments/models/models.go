package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ListRequest параметры выборки записей
// Для пациента и врача фильтр по владельцу подставляется принудительно
type ListRequest struct {
	Actor       domain.Actor
	PatientID   *int64
	DoctorID    *int64
	SpecialtyID *int64
	DateFrom    *time.Time
	DateTo      *time.Time
	States      []domain.AppointmentState
}

// AppointmentResponse ответ с данными записи на прием
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
	Cancellable bool      `json:"cancellable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(a *domain.Appointment, cancellable bool) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		SpecialtyID: a.SpecialtyID,
		Date:        a.Date.Format(domain.DateFormat),
		Time:        a.Time.String(),
		State:       a.State.String(),
		Reason:      a.Reason,
		Notes:       a.Notes,
		Cancellable: cancellable,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
