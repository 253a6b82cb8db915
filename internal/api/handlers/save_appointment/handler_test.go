package save_appointment

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
	saveAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *saveAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *saveAppointment.Request) (*saveAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &saveAppointment.Response{
		ID:          42,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		SpecialtyID: req.SpecialtyID,
		Date:        req.Date,
		Time:        req.Time,
		State:       req.State,
		Created:     req.IsCreate(),
	}, nil
}

const validBody = `{"patientId":100,"doctorId":1,"specialtyId":7,"date":"2025-09-02","time":"09:30"}`

// serve прогоняет запрос через роутер, чтобы mux.Vars были заполнены
func serve(uc *fakeUseCase, method, path, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/staff/appointments", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/staff/appointments/{appointmentId}", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{ID: 3, Role: domain.RoleStaff}))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CreateDefaultsToActive(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, http.MethodPost, "/staff/appointments", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(0), uc.got.ID)
	assert.Equal(t, domain.StateActive, uc.got.State)
	assert.Contains(t, rec.Body.String(), `"state":"active"`)
}

func TestHandle_UpdateReturnsOK(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, http.MethodPut, "/staff/appointments/5",
		`{"patientId":100,"doctorId":1,"specialtyId":7,"date":"2025-09-02","time":"10:00","state":"pending"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.ID)
	assert.Equal(t, domain.StatePending, uc.got.State)
}

func TestHandle_MissingActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/staff/appointments", strings.NewReader(validBody))
	rec := httptest.NewRecorder()

	NewHandler(&fakeUseCase{}, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		payload    string
		err        error
		wantStatus int
	}{
		{name: "bad id", method: http.MethodPut, path: "/staff/appointments/abc", payload: validBody, wantStatus: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPost, path: "/staff/appointments", payload: `{`, wantStatus: http.StatusBadRequest},
		{name: "bad date", method: http.MethodPost, path: "/staff/appointments", payload: `{"date":"02/09/2025","time":"09:30"}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", method: http.MethodPost, path: "/staff/appointments", payload: `{"date":"2025-09-02","time":"25:00"}`, wantStatus: http.StatusBadRequest},
		{name: "bad state", method: http.MethodPost, path: "/staff/appointments", payload: `{"date":"2025-09-02","time":"09:30","state":"done"}`, wantStatus: http.StatusBadRequest},
		{name: "denied", method: http.MethodPost, path: "/staff/appointments", payload: validBody, err: saveAppointment.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "past date", method: http.MethodPost, path: "/staff/appointments", payload: validBody, err: saveAppointment.ErrPastDate, wantStatus: http.StatusUnprocessableEntity},
		{name: "conflict", method: http.MethodPost, path: "/staff/appointments", payload: validBody, err: &domain.SlotConflictError{State: domain.StateActive}, wantStatus: http.StatusConflict},
		{name: "busy", method: http.MethodPost, path: "/staff/appointments", payload: validBody, err: saveAppointment.ErrSlotBusy, wantStatus: http.StatusConflict},
		{name: "doctor unavailable", method: http.MethodPost, path: "/staff/appointments", payload: validBody, err: saveAppointment.ErrDoctorUnavailable, wantStatus: http.StatusUnprocessableEntity},
		{name: "not found", method: http.MethodPut, path: "/staff/appointments/5", payload: validBody, err: &domain.NotFoundError{Entity: "appointment", ID: 5}, wantStatus: http.StatusNotFound},
		{name: "invalid input", method: http.MethodPost, path: "/staff/appointments", payload: validBody, err: saveAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", method: http.MethodPost, path: "/staff/appointments", payload: validBody, err: saveAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.method, tt.path, tt.payload)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
