package request_appointment

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrPastDate возвращается, когда дата в прошлом
	ErrPastDate = domain.ErrPastDate

	// ErrNotWorkingDay возвращается для выходных и праздничных дней (*domain.NotWorkingDayError)
	ErrNotWorkingDay = domain.ErrNotWorkingDay

	// ErrSlotConflict возвращается, когда слот уже занят (*domain.SlotConflictError)
	ErrSlotConflict = domain.ErrSlotConflict

	// ErrSlotBusy возвращается, когда слот в этот момент бронирует другой запрос
	ErrSlotBusy = domain.ErrSlotBusy

	// ErrDoctorUnavailable возвращается, когда врач неактивен или не ведет прием по специальности
	ErrDoctorUnavailable = domain.ErrDoctorUnavailable

	// ErrInvalidTimeSlot возвращается, когда время не является слотом окна приема врача
	ErrInvalidTimeSlot = domain.ErrInvalidTimeSlot

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_appointment: internal error")
)
