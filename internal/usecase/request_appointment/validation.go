package request_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.SpecialtyID <= 0 {
		return fmt.Errorf("%w: specialtyID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// validateDoctor проверяет, что врач активен и ведет прием по специальности
func validateDoctor(doc *domain.Doctor, specialtyID int64) error {
	if !doc.Active {
		return fmt.Errorf("%w: doctor id=%d is not active", ErrDoctorUnavailable, doc.ID)
	}
	if !doc.HasSpecialty(specialtyID) {
		return fmt.Errorf("%w: doctor id=%d does not attend specialty id=%d", ErrDoctorUnavailable, doc.ID, specialtyID)
	}
	return nil
}

// validateSlot проверяет, что время совпадает с одним из слотов окон приема врача
func validateSlot(windows []*domain.AvailabilityWindow, req *Request) error {
	for _, w := range windows {
		if w.HasSlot(req.Time) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a slot of doctor id=%d on %s",
		ErrInvalidTimeSlot, req.Time, req.DoctorID, req.Date.Format(domain.DateFormat))
}
