package save_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	saveAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_appointment"
)

const (
	msgInvalidAppointmentID = "ID de turno inválido"
	msgInvalidFields        = "fecha, hora o estado inválidos"
)

type Handler struct {
	useCase SaveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase SaveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/appointments
// Handle PUT /api/v1/staff/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s /staff/appointments - Missing user", r.Method)
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	// Для PUT ID берется из URL, для POST его нет
	var appointmentID int64
	if idStr, ok := mux.Vars(r)["appointmentId"]; ok {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("%s /staff/appointments/{id} - Invalid appointment ID: %q", r.Method, idStr)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)
			return
		}
		appointmentID = id
	}

	var req SaveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s /staff/appointments - Invalid request body: %v", r.Method, err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, appointmentID)
	if err != nil {
		h.logger.Warn("%s /staff/appointments - Invalid fields: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, saveAppointment.ErrAccessDenied):
			h.logger.Warn("%s /staff/appointments - Access denied: user_id=%d, role=%s", r.Method, actor.ID, actor.Role)
			handlers.RespondForbidden(w, handlers.MsgForbidden)

		case errors.Is(err, saveAppointment.ErrPastDate):
			h.logger.Warn("%s /staff/appointments - Past date: date=%s", r.Method, req.Date)
			handlers.RespondUnprocessable(w, handlers.MsgPastDate)

		case errors.Is(err, saveAppointment.ErrSlotConflict):
			h.logger.Warn("%s /staff/appointments - Slot conflict: appointment_id=%d, doctor_id=%d, error=%v",
				r.Method, appointmentID, req.DoctorID, err)
			handlers.RespondConflict(w, handlers.SlotConflictMessage(err))

		case errors.Is(err, saveAppointment.ErrSlotBusy):
			h.logger.Warn("%s /staff/appointments - Slot busy: doctor_id=%d", r.Method, req.DoctorID)
			handlers.RespondConflict(w, handlers.MsgSlotBusy)

		case errors.Is(err, saveAppointment.ErrDoctorUnavailable):
			h.logger.Warn("%s /staff/appointments - Doctor unavailable: doctor_id=%d, specialty_id=%d",
				r.Method, req.DoctorID, req.SpecialtyID)
			handlers.RespondUnprocessable(w, handlers.MsgDoctorUnavail)

		case errors.Is(err, domain.ErrEntityNotFound):
			h.logger.Warn("%s /staff/appointments - Not found: appointment_id=%d, error=%v", r.Method, appointmentID, err)
			handlers.RespondNotFound(w, handlers.MsgNotFound)

		case errors.Is(err, saveAppointment.ErrInvalidInput):
			h.logger.Warn("%s /staff/appointments - Invalid input: %v", r.Method, err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

		default:
			h.logger.Error("%s /staff/appointments - Failed to save appointment: appointment_id=%d, error=%v",
				r.Method, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("%s /staff/appointments - Appointment saved successfully: appointment_id=%d, state=%s, staff_id=%d",
		r.Method, result.ID, result.State, actor.ID)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
