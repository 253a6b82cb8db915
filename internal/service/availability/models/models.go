package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Target врач или специальность, для которых ищутся окна приема
// Должно быть задано ровно одно из полей
type Target struct {
	DoctorID    int64
	SpecialtyID int64
}

// IsSpecialty возвращает true, если поиск идет по специальности
func (t Target) IsSpecialty() bool {
	return t.DoctorID == 0 && t.SpecialtyID > 0
}

// SaveWindowRequest запрос на создание/обновление окна приема
type SaveWindowRequest struct {
	Actor    domain.Actor
	DoctorID int64
	Weekday  int
	Start    types.TimeString
	End      types.TimeString
	Active   bool
}

// ToDomain конвертирует запрос в domain модель
func (r *SaveWindowRequest) ToDomain() *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		DoctorID: r.DoctorID,
		Weekday:  r.Weekday,
		Start:    r.Start,
		End:      r.End,
		Active:   r.Active,
	}
}

// WindowResponse ответ с данными окна приема
type WindowResponse struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctorId"`
	Weekday   int       `json:"weekday"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:        w.ID,
		DoctorID:  w.DoctorID,
		Weekday:   w.Weekday,
		Start:     w.Start.String(),
		End:       w.End.String(),
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
