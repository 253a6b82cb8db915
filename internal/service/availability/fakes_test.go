package availability

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
)

type fakeDoctorRepo struct {
	doctors     map[int64]*domain.Doctor
	specialties map[int64]*domain.Specialty
	windows     []*domain.AvailabilityWindow
	nextID      int64
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors:     map[int64]*domain.Doctor{},
		specialties: map[int64]*domain.Specialty{},
	}
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return d, nil
}

func (f *fakeDoctorRepo) GetSpecialty(_ context.Context, id int64) (*domain.Specialty, error) {
	s, ok := f.specialties[id]
	if !ok {
		return nil, doctorRepo.ErrSpecialtyNotFound
	}
	return s, nil
}

func (f *fakeDoctorRepo) ListActiveBySpecialty(_ context.Context, specialtyID int64) ([]*domain.Doctor, error) {
	result := make([]*domain.Doctor, 0)
	for _, d := range f.doctors {
		if d.Active && d.HasSpecialty(specialtyID) {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeDoctorRepo) ListWindows(_ context.Context, doctorIDs []int64, weekday int) ([]*domain.AvailabilityWindow, error) {
	result := make([]*domain.AvailabilityWindow, 0)
	for _, w := range f.windows {
		if !w.Active || w.Weekday != weekday {
			continue
		}
		for _, id := range doctorIDs {
			if w.DoctorID == id {
				result = append(result, w)
			}
		}
	}
	return result, nil
}

func (f *fakeDoctorRepo) UpsertWindow(_ context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	for _, existing := range f.windows {
		if existing.DoctorID == w.DoctorID && existing.Weekday == w.Weekday && existing.Start == w.Start {
			existing.End = w.End
			existing.Active = w.Active
			return existing, nil
		}
	}
	f.nextID++
	w.ID = f.nextID
	f.windows = append(f.windows, w)
	return w, nil
}

func (f *fakeDoctorRepo) DeleteWindow(_ context.Context, doctorID, windowID int64) error {
	for i, w := range f.windows {
		if w.ID == windowID && w.DoctorID == doctorID {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return nil
		}
	}
	return doctorRepo.ErrWindowNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
