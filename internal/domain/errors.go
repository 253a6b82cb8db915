package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotWorkingDay        = errors.New("domain: date is not a working day")
	ErrPastDate             = errors.New("domain: date is in the past")
	ErrSlotConflict         = errors.New("domain: slot is no longer available")
	ErrAppointmentFinalized = errors.New("domain: appointment already finalized")
	ErrInsufficientLeadTime = errors.New("domain: too late to cancel the appointment")
	ErrNotYetDue            = errors.New("domain: appointment is not due yet")
	ErrEntityNotFound       = errors.New("domain: entity not found")
	ErrInvalidTransition    = errors.New("domain: invalid state transition")
	ErrAccessDenied         = errors.New("domain: access denied")
	ErrInvalidTimeSlot      = errors.New("domain: time is not a slot of the doctor")
	ErrDoctorUnavailable    = errors.New("domain: doctor does not attend this specialty")
	ErrSlotBusy             = errors.New("domain: slot is being booked by another request")
	ErrInvalidInput         = errors.New("domain: invalid input data")
	ErrInvalidWindow        = errors.New("domain: invalid availability window")
	ErrConcurrentUpdate     = errors.New("domain: appointment was changed concurrently")
)

// NotWorkingDayError carries the human-readable reason (weekend or holiday name)
type NotWorkingDayError struct {
	Reason string
}

func (e *NotWorkingDayError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotWorkingDay.Error(), e.Reason)
}

func (e *NotWorkingDayError) Is(target error) bool {
	return target == ErrNotWorkingDay
}

// SlotConflictError carries the state of the appointment that holds the slot
type SlotConflictError struct {
	State         AppointmentState
	AppointmentID int64 // zero when the conflict was detected by the database constraint
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s: held by appointment in state %s", ErrSlotConflict.Error(), e.State)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// NotFoundError names the missing entity
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s id=%d", ErrEntityNotFound.Error(), e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}
