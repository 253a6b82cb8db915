package save_window

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	saved     *models.SaveWindowRequest
	deleted   []int64
	saveErr   error
	deleteErr error
}

func (f *fakeService) SaveWindow(_ context.Context, req *models.SaveWindowRequest) (*models.WindowResponse, error) {
	f.saved = req
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &models.WindowResponse{
		ID:       11,
		DoctorID: req.DoctorID,
		Weekday:  req.Weekday,
		Start:    req.Start.String(),
		End:      req.End.String(),
		Active:   req.Active,
	}, nil
}

func (f *fakeService) DeleteWindow(_ context.Context, _ domain.Actor, doctorID, windowID int64) error {
	f.deleted = []int64{doctorID, windowID}
	return f.deleteErr
}

// serve прогоняет запрос через роутер, чтобы mux.Vars были заполнены
func serve(svc *fakeService, method, path, payload string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{doctorId}/windows", h.Handle).Methods(http.MethodPut)
	r.HandleFunc("/doctors/{doctorId}/windows/{windowId}", h.HandleDelete).Methods(http.MethodDelete)

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{ID: 3, Role: domain.RoleStaff}))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"weekday":1,"start":"09:00","end":"10:15"}`

func TestHandle_SavesWindow(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, http.MethodPut, "/doctors/4/windows", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.saved.DoctorID)
	assert.Equal(t, 1, svc.saved.Weekday)
	assert.True(t, svc.saved.Active)
	assert.Contains(t, rec.Body.String(), `"end":"10:15"`)
}

func TestHandleDelete_NoContent(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, http.MethodDelete, "/doctors/4/windows/11", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{4, 11}, svc.deleted)
	assert.Empty(t, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		payload    string
		err        error
		wantStatus int
	}{
		{name: "bad doctor id", path: "/doctors/x/windows", payload: validBody, wantStatus: http.StatusBadRequest},
		{name: "bad json", path: "/doctors/4/windows", payload: `{`, wantStatus: http.StatusBadRequest},
		{name: "bad time", path: "/doctors/4/windows", payload: `{"weekday":1,"start":"9h","end":"10:00"}`, wantStatus: http.StatusBadRequest},
		{name: "denied", path: "/doctors/4/windows", payload: validBody, err: availability.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "doctor not found", path: "/doctors/4/windows", payload: validBody, err: &domain.NotFoundError{Entity: "doctor", ID: 4}, wantStatus: http.StatusNotFound},
		{name: "invalid window", path: "/doctors/4/windows", payload: validBody, err: availability.ErrInvalidWindow, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid input", path: "/doctors/4/windows", payload: validBody, err: availability.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", path: "/doctors/4/windows", payload: validBody, err: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{saveErr: tt.err}, http.MethodPut, tt.path, tt.payload)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleDelete_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "bad doctor id", path: "/doctors/x/windows/11", wantStatus: http.StatusBadRequest},
		{name: "bad window id", path: "/doctors/4/windows/y", wantStatus: http.StatusBadRequest},
		{name: "denied", path: "/doctors/4/windows/11", err: availability.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "window not found", path: "/doctors/4/windows/11", err: availability.ErrDoctorNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", path: "/doctors/4/windows/11", err: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{deleteErr: tt.err}, http.MethodDelete, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MissingActor(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{doctorId}/windows", NewHandler(&fakeService{}, nopLogger{}).Handle).Methods(http.MethodPut)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/doctors/4/windows", strings.NewReader(validBody)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
