package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentState represents the lifecycle state of an appointment
type AppointmentState string

const (
	StatePending            AppointmentState = "pending"
	StateActive             AppointmentState = "active"
	StateInProgress         AppointmentState = "en_atencion"
	StateAttended           AppointmentState = "atendido"
	StateNoShow             AppointmentState = "ausente"
	StateCancelledByPatient AppointmentState = "cancelado_paciente"
	StateCancelledByDoctor  AppointmentState = "cancelado_medico"
	StateRejected           AppointmentState = "rechazado"

	// stateConfirmedAlias legacy name of StateActive accepted on input
	stateConfirmedAlias = "confirmed"
)

// AllStates every known state in lifecycle order
var AllStates = []AppointmentState{
	StatePending,
	StateActive,
	StateInProgress,
	StateAttended,
	StateNoShow,
	StateCancelledByPatient,
	StateCancelledByDoctor,
	StateRejected,
}

// TerminalStates states after which an appointment can no longer change
var TerminalStates = []AppointmentState{
	StateAttended,
	StateNoShow,
	StateCancelledByPatient,
	StateCancelledByDoctor,
	StateRejected,
}

// ParseState converts wire value into AppointmentState ("confirmed" is an alias of "active")
func ParseState(s string) (AppointmentState, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == stateConfirmedAlias {
		return StateActive, nil
	}
	for _, st := range AllStates {
		if string(st) == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown state %q", ErrInvalidInput, s)
}

// IsTerminal returns true for final states
func (s AppointmentState) IsTerminal() bool {
	for _, t := range TerminalStates {
		if s == t {
			return true
		}
	}
	return false
}

// IsValid returns true if the state is one of the known values
func (s AppointmentState) IsValid() bool {
	for _, st := range AllStates {
		if s == st {
			return true
		}
	}
	return false
}

// In reports whether s is a member of set
func (s AppointmentState) In(set []AppointmentState) bool {
	for _, st := range set {
		if s == st {
			return true
		}
	}
	return false
}

func (s AppointmentState) String() string {
	return string(s)
}

// Appointment represents a patient's visit booked on a doctor's slot
type Appointment struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	SpecialtyID int64
	Date        time.Time        // calendar date, time part ignored
	Time        types.TimeString // slot start
	State       AppointmentState
	Reason      *string // patient's reason for the visit
	Notes       *string // clinician notes

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the appointment is in a final state
func (a *Appointment) IsTerminal() bool {
	return a.State.IsTerminal()
}

// Slot returns the (doctor, date, time) key the appointment occupies
func (a *Appointment) Slot() SlotKey {
	return SlotKey{DoctorID: a.DoctorID, Date: DateOnly(a.Date), Time: a.Time}
}

// ScheduledAt combines date and time in the given location
func (a *Appointment) ScheduledAt(loc *time.Location) (time.Time, error) {
	return a.Time.On(a.Date, loc)
}

// CanCancel reports whether a patient may still cancel at moment now
// Cancellation is possible only for non-terminal appointments scheduled later than now + lead
func (a *Appointment) CanCancel(now time.Time, lead time.Duration) bool {
	return a.CancelGuard(now, lead) == nil
}

// CancelGuard returns the reason why cancellation is not allowed, or nil
func (a *Appointment) CancelGuard(now time.Time, lead time.Duration) error {
	if a.IsTerminal() {
		return ErrAppointmentFinalized
	}
	scheduled, err := a.ScheduledAt(now.Location())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !now.Before(scheduled.Add(-lead)) {
		return ErrInsufficientLeadTime
	}
	return nil
}

// IsDue reports whether the scheduled moment has been reached at now
func (a *Appointment) IsDue(now time.Time) (bool, error) {
	scheduled, err := a.ScheduledAt(now.Location())
	if err != nil {
		return false, err
	}
	return !scheduled.After(now), nil
}

// SlotKey identifies a single bookable slot of a doctor
type SlotKey struct {
	DoctorID int64
	Date     time.Time
	Time     types.TimeString
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%s:%s", k.DoctorID, k.Date.Format(DateFormat), k.Time)
}

// AppointmentsFilter criteria for appointment lookups
type AppointmentsFilter struct {
	PatientID   *int64
	DoctorID    *int64
	SpecialtyID *int64
	DateFrom    *time.Time
	DateTo      *time.Time
	Time        *types.TimeString
	States      []AppointmentState // empty = any state
	ExcludeID   *int64
	ForUpdate   bool // lock matching rows when running inside a transaction
}

// SlotFilter builds a filter selecting rows of a single slot in the given states
func SlotFilter(key SlotKey, states []AppointmentState) AppointmentsFilter {
	date := DateOnly(key.Date)
	t := key.Time
	doctorID := key.DoctorID
	return AppointmentsFilter{
		DoctorID:  &doctorID,
		DateFrom:  &date,
		DateTo:    &date,
		Time:      &t,
		States:    states,
		ForUpdate: true,
	}
}

// DateOnly drops the time part of t keeping its location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDateInPast reports whether date is strictly before the calendar day of now
func IsDateInPast(date, now time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(DateOnly(now))
}
