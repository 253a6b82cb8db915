package transition_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *transitionAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *transitionAppointment.Request) (*transitionAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &transitionAppointment.Response{
		ID:        req.AppointmentID,
		Date:      time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		Time:      "09:30",
		FromState: domain.StatePending,
		State:     req.TargetState,
	}, nil
}

// serve прогоняет запрос через роутер, чтобы mux.Vars были заполнены
func serve(uc *fakeUseCase, path, payload string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/state", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(payload))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{ID: 7, Role: domain.RoleStaff}))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ConfirmedAlias(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/appointments/5/state", `{"state":"confirmed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.AppointmentID)
	assert.Equal(t, domain.StateActive, uc.got.TargetState)
	assert.Contains(t, rec.Body.String(), `"state":"active"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		payload    string
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/appointments/abc/state", payload: `{"state":"active"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown state", path: "/appointments/5/state", payload: `{"state":"done"}`, wantStatus: http.StatusBadRequest},
		{name: "finalized", path: "/appointments/5/state", payload: `{"state":"active"}`, err: domain.ErrAppointmentFinalized, wantStatus: http.StatusConflict},
		{name: "lead time", path: "/appointments/5/state", payload: `{"state":"cancelado_paciente"}`, err: domain.ErrInsufficientLeadTime, wantStatus: http.StatusUnprocessableEntity},
		{name: "not due", path: "/appointments/5/state", payload: `{"state":"atendido"}`, err: domain.ErrNotYetDue, wantStatus: http.StatusUnprocessableEntity},
		{name: "conflict", path: "/appointments/5/state", payload: `{"state":"active"}`, err: &domain.SlotConflictError{State: domain.StateActive}, wantStatus: http.StatusConflict},
		{name: "denied", path: "/appointments/5/state", payload: `{"state":"active"}`, err: domain.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "not found", path: "/appointments/5/state", payload: `{"state":"active"}`, err: &domain.NotFoundError{Entity: "appointment", ID: 5}, wantStatus: http.StatusNotFound},
		{name: "concurrent", path: "/appointments/5/state", payload: `{"state":"active"}`, err: domain.ErrConcurrentUpdate, wantStatus: http.StatusConflict},
		{name: "internal", path: "/appointments/5/state", payload: `{"state":"active"}`, err: transitionAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.path, tt.payload)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
