package request_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	requestAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/request_appointment"
)

const (
	msgOnlyPatients    = "sólo los pacientes pueden solicitar turnos"
	msgInvalidDateTime = "fecha u hora inválidas, se espera YYYY-MM-DD y HH:MM"
)

type Handler struct {
	useCase RequestAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RequestAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	if actor.Role != domain.RolePatient {
		h.logger.Warn("POST /appointments - Not a patient: user_id=%d, role=%s", actor.ID, actor.Role)
		handlers.RespondForbidden(w, msgOnlyPatients)
		return
	}

	var req RequestAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date or time: date=%q, time=%q, error=%v", req.Date, req.Time, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestAppointment.ErrNotWorkingDay):
			h.logger.Warn("POST /appointments - Not a working day: patient_id=%d, error=%v", actor.ID, err)
			handlers.RespondUnprocessable(w, handlers.NotWorkingDayMessage(err))

		case errors.Is(err, requestAppointment.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: patient_id=%d, date=%s", actor.ID, req.Date)
			handlers.RespondUnprocessable(w, handlers.MsgPastDate)

		case errors.Is(err, requestAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: patient_id=%d, doctor_id=%d, error=%v", actor.ID, req.DoctorID, err)
			handlers.RespondConflict(w, handlers.SlotConflictMessage(err))

		case errors.Is(err, requestAppointment.ErrSlotBusy):
			h.logger.Warn("POST /appointments - Slot busy: patient_id=%d, doctor_id=%d", actor.ID, req.DoctorID)
			handlers.RespondConflict(w, handlers.MsgSlotBusy)

		case errors.Is(err, requestAppointment.ErrDoctorUnavailable):
			h.logger.Warn("POST /appointments - Doctor unavailable: doctor_id=%d, specialty_id=%d", req.DoctorID, req.SpecialtyID)
			handlers.RespondUnprocessable(w, handlers.MsgDoctorUnavail)

		case errors.Is(err, requestAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: doctor_id=%d, time=%s", req.DoctorID, req.Time)
			handlers.RespondUnprocessable(w, handlers.MsgInvalidTimeSlot)

		case errors.Is(err, domain.ErrEntityNotFound):
			h.logger.Warn("POST /appointments - Not found: doctor_id=%d, specialty_id=%d", req.DoctorID, req.SpecialtyID)
			handlers.RespondNotFound(w, handlers.MsgNotFound)

		case errors.Is(err, requestAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to request appointment: patient_id=%d, doctor_id=%d, error=%v",
				actor.ID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment requested successfully: appointment_id=%d, patient_id=%d, doctor_id=%d",
		result.ID, result.PatientID, result.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
