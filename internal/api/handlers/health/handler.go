package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"

	pingTimeout = 2 * time.Second
)

// Response HTTP response model
type Response struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type Handler struct {
	dependencies map[string]Pinger
	logger       Logger
}

// NewHandler dependencies: имя зависимости -> проверка
func NewHandler(dependencies map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		dependencies: dependencies,
		logger:       logger,
	}
}

// Live GET /health
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Status: statusOK})
}

// Ready GET /ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{Status: statusOK, Dependencies: make(map[string]string, len(h.dependencies))}
	status := http.StatusOK

	for name, dep := range h.dependencies {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Error("GET /ready - Dependency unavailable: name=%s, error=%v", name, err)
			resp.Dependencies[name] = statusUnavailable
			resp.Status = statusUnavailable
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = statusOK
	}

	handlers.RespondJSON(w, status, resp)
}

// PingFunc адаптер функции к Pinger (например, db.PingContext)
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
