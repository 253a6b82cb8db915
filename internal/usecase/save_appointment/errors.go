package save_appointment

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда сохранять запись пытается не сотрудник клиники
	ErrAccessDenied = domain.ErrAccessDenied

	// ErrPastDate возвращается, когда дата в прошлом
	ErrPastDate = domain.ErrPastDate

	// ErrSlotConflict возвращается, когда слот занят (*domain.SlotConflictError)
	ErrSlotConflict = domain.ErrSlotConflict

	// ErrSlotBusy возвращается, когда слот в этот момент бронирует другой запрос
	ErrSlotBusy = domain.ErrSlotBusy

	// ErrDoctorUnavailable возвращается, когда врач не ведет прием по специальности
	ErrDoctorUnavailable = domain.ErrDoctorUnavailable

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_appointment: internal error")
)
