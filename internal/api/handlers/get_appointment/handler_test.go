package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotID    int64
	gotActor domain.Actor
	err      error
}

func (f *fakeService) GetByID(_ context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	f.gotID, f.gotActor = id, actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, PatientID: actor.ID, Date: "2025-09-02", Time: "09:30", State: "pending", Cancellable: true}, nil
}

func serve(svc *fakeService, path string, withActor bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{ID: 100, Role: domain.RolePatient}))
	}
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsAppointment(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/appointments/5", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	assert.Equal(t, int64(100), svc.gotActor.ID)
	assert.Contains(t, rec.Body.String(), `"cancellable":true`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		noActor    bool
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/appointments/abc", wantStatus: http.StatusBadRequest},
		{name: "missing user", path: "/appointments/5", noActor: true, wantStatus: http.StatusUnauthorized},
		{name: "not found", path: "/appointments/5", err: &domain.NotFoundError{Entity: "appointment", ID: 5}, wantStatus: http.StatusNotFound},
		{name: "denied", path: "/appointments/5", err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", path: "/appointments/5", err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path, !tt.noActor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
