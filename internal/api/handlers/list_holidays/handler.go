package list_holidays

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/calendar"
)

const msgInvalidYear = "año inválido"

type Handler struct {
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

func NewHandler(timeProvider TimeProvider, location *time.Location, logger Logger) *Handler {
	return &Handler{
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Handle GET /api/v1/holidays?year=2025
// Без year - текущий год клиники
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	year := h.timeProvider.Now().In(h.location).Year()

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1900 || y > 2200 {
			h.logger.Warn("GET /holidays - Invalid year: %q", s)
			handlers.RespondBadRequest(w, msgInvalidYear)
			return
		}
		year = y
	}

	holidays := calendar.HolidaysIn(year, h.location)
	if !calendar.MovableHolidaysKnown(year) {
		h.logger.Warn("GET /holidays - Movable holidays unknown for year=%d", year)
	}

	h.logger.Info("GET /holidays - Holidays retrieved successfully: year=%d, count=%d", year, len(holidays))
	handlers.RespondJSON(w, http.StatusOK, FromCalendar(year, holidays))
}
