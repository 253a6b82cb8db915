package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest собирает фильтр из query параметров
// patientId, doctorId, specialtyId, from, to (YYYY-MM-DD), state (через запятую)
func ToServiceRequest(actor domain.Actor, q url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{Actor: actor}

	var err error
	if req.PatientID, err = optionalID(q, "patientId"); err != nil {
		return nil, err
	}
	if req.DoctorID, err = optionalID(q, "doctorId"); err != nil {
		return nil, err
	}
	if req.SpecialtyID, err = optionalID(q, "specialtyId"); err != nil {
		return nil, err
	}
	if req.DateFrom, err = optionalDate(q, "from"); err != nil {
		return nil, err
	}
	if req.DateTo, err = optionalDate(q, "to"); err != nil {
		return nil, err
	}

	if raw := q.Get("state"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			state, err := domain.ParseState(s)
			if err != nil {
				return nil, err
			}
			req.States = append(req.States, state)
		}
	}

	return req, nil
}

func optionalID(q url.Values, key string) (*int64, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: invalid %s %q", domain.ErrInvalidInput, key, s)
	}
	return &id, nil
}

func optionalDate(q url.Values, key string) (*time.Time, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", domain.ErrInvalidInput, key, s)
	}
	return &d, nil
}
