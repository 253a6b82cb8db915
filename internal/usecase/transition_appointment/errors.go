package transition_appointment

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentFinalized возвращается, когда запись уже в конечном статусе
	ErrAppointmentFinalized = domain.ErrAppointmentFinalized

	// ErrInsufficientLeadTime возвращается, когда до приема осталось меньше допустимого для отмены времени
	ErrInsufficientLeadTime = domain.ErrInsufficientLeadTime

	// ErrNotYetDue возвращается, когда врач пытается отметить прием, время которого еще не наступило
	ErrNotYetDue = domain.ErrNotYetDue

	// ErrInvalidTransition возвращается, когда переход недопустим для роли или текущего статуса
	ErrInvalidTransition = domain.ErrInvalidTransition

	// ErrAccessDenied возвращается, когда запись не принадлежит пациенту/врачу
	ErrAccessDenied = domain.ErrAccessDenied

	// ErrSlotBusy возвращается, когда слот в этот момент меняет другой запрос
	ErrSlotBusy = domain.ErrSlotBusy

	// ErrConcurrentUpdate возвращается, когда статус записи изменился параллельно
	ErrConcurrentUpdate = domain.ErrConcurrentUpdate

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
