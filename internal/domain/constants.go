package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Booking engine constants
const (
	SlotDurationMinutes     = 30
	DefaultCancellationLead = 2 * time.Hour

	DefaultClinicOpen  types.TimeString = "07:00"
	DefaultClinicClose types.TimeString = "16:00"
)

// Business validation constants
const (
	MaxReasonLength = 500
	MaxNotesLength  = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// WeekdayIndex returns 0 for Monday .. 6 for Sunday
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
