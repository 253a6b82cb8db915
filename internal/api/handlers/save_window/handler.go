package save_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

const (
	msgInvalidDoctorID = "ID de médico inválido"
	msgInvalidWindowID = "ID de horario inválido"
	msgInvalidTimes    = "horas inválidas, se espera HH:MM"
	msgNotFound        = "médico u horario no encontrado"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctors/{doctorId}/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.ParseInt(mux.Vars(r)["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/windows - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /doctors/{id}/windows - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	var req SaveWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor, doctorID)
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/windows - Invalid times: start=%q, end=%q", req.Start, req.End)
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	// Сервис сам проверит права и границы часов работы клиники
	result, err := h.service.SaveWindow(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, "PUT /doctors/{id}/windows", doctorID, err)
		return
	}

	h.logger.Info("PUT /doctors/{id}/windows - Window saved successfully: doctor_id=%d, window_id=%d, weekday=%d",
		doctorID, result.ID, result.Weekday)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/doctors/{doctorId}/windows/{windowId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /doctors/{id}/windows/{id} - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /doctors/{id}/windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /doctors/{id}/windows/{id} - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), actor, doctorID, windowID); err != nil {
		h.respondError(w, "DELETE /doctors/{id}/windows/{id}", doctorID, err)
		return
	}

	h.logger.Info("DELETE /doctors/{id}/windows/{id} - Window deleted successfully: doctor_id=%d, window_id=%d",
		doctorID, windowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, doctorID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: doctor_id=%d", op, doctorID)
		handlers.RespondForbidden(w, handlers.MsgForbidden)

	case errors.Is(err, availability.ErrDoctorNotFound):
		h.logger.Warn("%s - Not found: doctor_id=%d, error=%v", op, doctorID, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, availability.ErrInvalidWindow):
		h.logger.Warn("%s - Invalid window: doctor_id=%d, error=%v", op, doctorID, err)
		handlers.RespondUnprocessable(w, handlers.MsgInvalidWindow)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: doctor_id=%d, error=%v", op, doctorID, err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

	default:
		h.logger.Error("%s - Failed: doctor_id=%d, error=%v", op, doctorID, err)
		handlers.RespondInternalError(w)
	}
}
