package handlers

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	MsgMissingUser       = "usuario no autenticado"
	MsgForbidden         = "acceso denegado"
	MsgInvalidBody       = "cuerpo de la solicitud inválido"
	MsgPastDate          = "No se pueden solicitar turnos en fechas pasadas"
	MsgWeekend           = "No se pueden solicitar turnos los fines de semana"
	MsgSlotTaken         = "El horario seleccionado ya no está disponible"
	MsgSlotBusy          = "El horario está siendo reservado por otra solicitud, intente nuevamente"
	MsgDoctorUnavail     = "El médico no atiende la especialidad seleccionada"
	MsgInvalidTimeSlot   = "El horario no corresponde a la agenda del médico"
	MsgNotFound          = "recurso no encontrado"
	MsgInvalidInput      = "datos de entrada inválidos"
	MsgFinalized         = "El turno ya fue finalizado"
	MsgInsufficientLead  = "Ya no es posible cancelar el turno: venció el plazo de cancelación"
	MsgNotYetDue         = "El turno todavía no comenzó"
	MsgInvalidTransition = "Cambio de estado no permitido"
	MsgConcurrentUpdate  = "El turno fue modificado por otra solicitud, recargue e intente nuevamente"
	MsgInvalidWindow     = "Horario de atención inválido"
)

// NotWorkingDayMessage сообщение для выходного или праздничного дня
func NotWorkingDayMessage(err error) string {
	var nwd *domain.NotWorkingDayError
	if !errors.As(err, &nwd) || nwd.Reason == calendar.WeekendReason {
		return MsgWeekend
	}
	return fmt.Sprintf("No se pueden solicitar turnos en feriados: %s", nwd.Reason)
}

// SlotConflictMessage сообщение о занятом слоте с учетом статуса занявшей его записи
func SlotConflictMessage(err error) string {
	var sc *domain.SlotConflictError
	if !errors.As(err, &sc) {
		return MsgSlotTaken
	}
	switch sc.State {
	case domain.StatePending:
		return "El horario tiene una solicitud pendiente de otro paciente"
	case domain.StateInProgress:
		return "El horario está siendo atendido"
	default:
		return MsgSlotTaken
	}
}
