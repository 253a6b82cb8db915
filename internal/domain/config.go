package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ClinicHours clinic-wide operating range; every availability window must fit inside it
type ClinicHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// DefaultClinicHours 07:00-16:00
func DefaultClinicHours() ClinicHours {
	return ClinicHours{Open: DefaultClinicOpen, Close: DefaultClinicClose}
}

// Validate checks that Open < Close
func (h ClinicHours) Validate() error {
	if err := h.Open.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidInput, err)
	}
	if err := h.Close.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidInput, err)
	}
	if !h.Open.IsBefore(h.Close) {
		return fmt.Errorf("%w: clinic opens at %s but closes at %s", ErrInvalidInput, h.Open, h.Close)
	}
	return nil
}

// Contains reports whether [start, end] lies within the clinic hours
func (h ClinicHours) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(h.Open) && !end.IsAfter(h.Close)
}

// BookingPolicy tunables of the booking engine
type BookingPolicy struct {
	CancellationLead         time.Duration
	RejectSiblingsOnValidate bool
}

// DefaultBookingPolicy 2h cancellation lead, sibling requests are kept on validation
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{CancellationLead: DefaultCancellationLead}
}
