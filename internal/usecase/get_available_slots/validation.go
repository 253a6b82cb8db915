package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID < 0 || req.SpecialtyID < 0 {
		return fmt.Errorf("%w: doctorID and specialtyID must not be negative", ErrInvalidInput)
	}

	if (req.DoctorID > 0) == (req.SpecialtyID > 0) {
		return fmt.Errorf("%w: exactly one of doctorID and specialtyID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := conflict.ParsePolicy(string(req.Policy)); err != nil {
		return err
	}

	if _, err := domain.ParseSlotMode(string(req.Mode)); err != nil {
		return fmt.Errorf("%w: unknown slot mode %q", ErrInvalidInput, req.Mode)
	}

	return nil
}
