package availability

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = domain.ErrEntityNotFound

	// ErrInvalidWindow возвращается при некорректном окне приема
	ErrInvalidWindow = domain.ErrInvalidWindow

	// ErrAccessDenied возвращается, когда изменять расписание пытается не сотрудник клиники
	ErrAccessDenied = domain.ErrAccessDenied

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
