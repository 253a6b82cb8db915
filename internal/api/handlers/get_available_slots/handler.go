package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidQuery  = "parámetros inválidos: se espera doctorId o specialtyId, date=YYYY-MM-DD, policy y mode opcionales"
	msgTargetMissing = "se debe indicar exactamente uno de doctorId o specialtyId"
	msgNotFound      = "médico o especialidad no encontrados"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: doctorId | specialtyId, date (YYYY-MM-DD), policy, mode
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrNotWorkingDay):
			h.logger.Warn("GET /slots - Not a working day: date=%s, error=%v", useCaseReq.Date.Format(domain.DateFormat), err)
			handlers.RespondUnprocessable(w, handlers.NotWorkingDayMessage(err))

		case errors.Is(err, getAvailableSlots.ErrPastDate):
			h.logger.Warn("GET /slots - Past date: date=%s", useCaseReq.Date.Format(domain.DateFormat))
			handlers.RespondUnprocessable(w, handlers.MsgPastDate)

		case errors.Is(err, domain.ErrEntityNotFound):
			h.logger.Warn("GET /slots - Target not found: doctor_id=%d, specialty_id=%d", useCaseReq.DoctorID, useCaseReq.SpecialtyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgTargetMissing)

		default:
			h.logger.Error("GET /slots - Failed to get slots: doctor_id=%d, specialty_id=%d, error=%v",
				useCaseReq.DoctorID, useCaseReq.SpecialtyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: doctor_id=%d, specialty_id=%d, date=%s, slots_count=%d",
		useCaseReq.DoctorID, useCaseReq.SpecialtyID, useCaseReq.Date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
