package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Slot represents a bookable 30-minute slot of a doctor
type Slot struct {
	Time      types.TimeString
	DoctorID  int64 // zero when slots are deduplicated across doctors
	Available bool
}

// SlotMode defines how slots of several doctors are presented
type SlotMode string

const (
	// SlotModeByDoctor one row per (doctor, time)
	SlotModeByDoctor SlotMode = "by_doctor"
	// SlotModeUnique one row per time, available if at least one doctor is free
	SlotModeUnique SlotMode = "unique"
)

// ParseSlotMode converts wire value into SlotMode (empty = by_doctor)
func ParseSlotMode(s string) (SlotMode, error) {
	switch SlotMode(s) {
	case "", SlotModeByDoctor:
		return SlotModeByDoctor, nil
	case SlotModeUnique:
		return SlotModeUnique, nil
	default:
		return "", ErrInvalidInput
	}
}
