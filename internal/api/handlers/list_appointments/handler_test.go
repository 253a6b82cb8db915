package list_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

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
	got *models.ListRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListRequest) ([]*models.AppointmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return []*models.AppointmentResponse{{ID: 1, State: "active"}, {ID: 2, State: "pending"}}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{ID: 3, Role: domain.RoleStaff}))
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/appointments?doctorId=4&from=2025-09-01&to=2025-09-30&state=confirmed,pending")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.DoctorID)
	assert.Equal(t, int64(4), *svc.got.DoctorID)
	assert.Nil(t, svc.got.PatientID)
	assert.Equal(t, "2025-09-01", svc.got.DateFrom.Format(domain.DateFormat))
	assert.Equal(t, "2025-09-30", svc.got.DateTo.Format(domain.DateFormat))
	assert.Equal(t, []domain.AppointmentState{domain.StateActive, domain.StatePending}, svc.got.States)
	assert.Equal(t, int64(3), svc.got.Actor.ID)
	assert.Contains(t, rec.Body.String(), `"id":2`)
}

func TestHandle_MissingActor(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHandler(&fakeService{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/appointments", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "bad doctor id", target: "/appointments?doctorId=x", wantStatus: http.StatusBadRequest},
		{name: "negative patient id", target: "/appointments?patientId=-1", wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/appointments?from=01-09-2025", wantStatus: http.StatusBadRequest},
		{name: "unknown state", target: "/appointments?state=active,done", wantStatus: http.StatusBadRequest},
		{name: "service rejects filter", target: "/appointments", err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "denied", target: "/appointments?patientId=9", err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", target: "/appointments", err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestToServiceRequest_EmptyQuery(t *testing.T) {
	req, err := ToServiceRequest(domain.Actor{ID: 1, Role: domain.RolePatient}, url.Values{})

	require.NoError(t, err)
	assert.Nil(t, req.DoctorID)
	assert.Nil(t, req.DateFrom)
	assert.Empty(t, req.States)
}
