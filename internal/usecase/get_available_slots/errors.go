package get_available_slots

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrPastDate возвращается, когда дата в прошлом
	ErrPastDate = domain.ErrPastDate

	// ErrNotWorkingDay возвращается для выходных и праздничных дней (*domain.NotWorkingDayError)
	ErrNotWorkingDay = domain.ErrNotWorkingDay

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
