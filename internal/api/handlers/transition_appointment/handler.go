package transition_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

const (
	msgInvalidAppointmentID = "ID de turno inválido"
	msgInvalidState         = "estado desconocido"
	msgNotFound             = "turno no encontrado"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/state
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/state - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	idStr := mux.Vars(r)["appointmentId"]
	appointmentID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/state - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/state - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/state - Invalid state: %q", req.State)
		handlers.RespondBadRequest(w, msgInvalidState)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntityNotFound):
			h.logger.Warn("PATCH /appointments/{id}/state - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/state - Access denied: appointment_id=%d, user_id=%d, role=%s",
				appointmentID, actor.ID, actor.Role)
			handlers.RespondForbidden(w, handlers.MsgForbidden)

		case errors.Is(err, transitionAppointment.ErrAppointmentFinalized):
			h.logger.Warn("PATCH /appointments/{id}/state - Finalized: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, handlers.MsgFinalized)

		case errors.Is(err, transitionAppointment.ErrInsufficientLeadTime):
			h.logger.Warn("PATCH /appointments/{id}/state - Insufficient lead time: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessable(w, handlers.MsgInsufficientLead)

		case errors.Is(err, transitionAppointment.ErrNotYetDue):
			h.logger.Warn("PATCH /appointments/{id}/state - Not yet due: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessable(w, handlers.MsgNotYetDue)

		case errors.Is(err, transitionAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/state - Invalid transition: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondUnprocessable(w, handlers.MsgInvalidTransition)

		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/{id}/state - Slot conflict: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondConflict(w, handlers.SlotConflictMessage(err))

		case errors.Is(err, transitionAppointment.ErrSlotBusy):
			h.logger.Warn("PATCH /appointments/{id}/state - Slot busy: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, handlers.MsgSlotBusy)

		case errors.Is(err, transitionAppointment.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /appointments/{id}/state - Concurrent update: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, handlers.MsgConcurrentUpdate)

		case errors.Is(err, transitionAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/state - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/state - Failed to change state: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/state - State changed successfully: appointment_id=%d, from=%s, to=%s, rejected=%d",
		result.ID, result.FromState, result.State, len(result.RejectedIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
