package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Doctor represents a clinician who owns availability windows
type Doctor struct {
	ID           int64
	FirstName    string
	LastName     string
	Active       bool
	SpecialtyIDs []int64
}

// FullName returns "First Last"
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// HasSpecialty reports whether the doctor practices the given specialty
func (d *Doctor) HasSpecialty(specialtyID int64) bool {
	for _, id := range d.SpecialtyIDs {
		if id == specialtyID {
			return true
		}
	}
	return false
}

// Specialty represents a medical specialty
type Specialty struct {
	ID     int64
	Name   string
	Active bool
}

// AvailabilityWindow is a doctor's recurring weekly working range
type AvailabilityWindow struct {
	ID       int64
	DoctorID int64
	Weekday  int // 0=Monday .. 6=Sunday
	Start    types.TimeString
	End      types.TimeString
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks weekday range, start < end and that the window fits the clinic hours
func (w *AvailabilityWindow) Validate(hours ClinicHours) error {
	if w.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidWindow)
	}
	if w.Weekday < 0 || w.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidWindow)
	}
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.Start, w.End)
	}
	if !hours.Contains(w.Start, w.End) {
		return fmt.Errorf("%w: %s-%s is outside clinic hours %s-%s",
			ErrInvalidWindow, w.Start, w.End, hours.Open, hours.Close)
	}
	return nil
}

// ActorRole is the role of the user performing an operation
type ActorRole string

const (
	RolePatient ActorRole = "patient"
	RoleStaff   ActorRole = "staff"
	RoleDoctor  ActorRole = "doctor"
)

// ParseActorRole converts wire value into ActorRole
func ParseActorRole(s string) (ActorRole, error) {
	switch ActorRole(s) {
	case RolePatient, RoleStaff, RoleDoctor:
		return ActorRole(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}

// Actor identifies who performs an operation
type Actor struct {
	ID   int64
	Role ActorRole
}

// SlotTimes expands the window into 30-minute slot starts
// A slot is emitted while its start is before the window end, so a trailing partial slot is kept
func (w *AvailabilityWindow) SlotTimes() ([]types.TimeString, error) {
	start, err := w.Start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	end, err := w.End.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}

	slots := make([]types.TimeString, 0, (end-start+SlotDurationMinutes-1)/SlotDurationMinutes)
	for m := start; m < end; m += SlotDurationMinutes {
		t, err := types.FromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, t)
	}

	return slots, nil
}

// HasSlot reports whether t is one of the window's slot starts
func (w *AvailabilityWindow) HasSlot(t types.TimeString) bool {
	slots, err := w.SlotTimes()
	if err != nil {
		return false
	}
	for _, s := range slots {
		if s.Equal(t) {
			return true
		}
	}
	return false
}
