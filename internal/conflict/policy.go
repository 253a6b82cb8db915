package conflict

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Policy selects which states of other appointments block a slot
type Policy string

const (
	// Optimistic patient self-service: only validated appointments hold a slot,
	// so several pending requests for the same slot may coexist
	Optimistic Policy = "optimistic"

	// Authoritative staff actions: a non-pending target must not collide with
	// pending requests either
	Authoritative Policy = "authoritative"
)

var (
	holdingStates = []domain.AppointmentState{domain.StateActive, domain.StateInProgress}
	liveStates    = []domain.AppointmentState{domain.StatePending, domain.StateActive, domain.StateInProgress}
)

// ParsePolicy converts wire value into Policy (empty = Optimistic)
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", Optimistic:
		return Optimistic, nil
	case Authoritative:
		return Authoritative, nil
	default:
		return "", fmt.Errorf("%w: unknown conflict policy %q", domain.ErrInvalidInput, s)
	}
}

func (p Policy) String() string {
	return string(p)
}

// BlockingStates returns the states of other appointments on the same slot
// that prevent an appointment from entering target
// Terminal targets never conflict
func (p Policy) BlockingStates(target domain.AppointmentState) []domain.AppointmentState {
	if target.IsTerminal() {
		return nil
	}
	if p == Authoritative && target != domain.StatePending {
		return liveStates
	}
	return holdingStates
}

// SlotBlockingStates states that make a slot show as unavailable
func (p Policy) SlotBlockingStates() []domain.AppointmentState {
	return p.BlockingStates(domain.StateActive)
}

// Check verifies that candidate may hold its slot in candidate.State
// existing may contain rows of other slots and candidate itself; both are ignored
func Check(p Policy, candidate *domain.Appointment, existing []*domain.Appointment) error {
	blocking := p.BlockingStates(candidate.State)
	if len(blocking) == 0 {
		return nil
	}

	key := candidate.Slot()
	for _, other := range existing {
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if !sameSlot(key, other.Slot()) {
			continue
		}
		if other.State.In(blocking) {
			return &domain.SlotConflictError{State: other.State, AppointmentID: other.ID}
		}
	}

	return nil
}

// IsSlotBlocked reports whether any appointment in existing blocks key under p
func IsSlotBlocked(p Policy, key domain.SlotKey, existing []*domain.Appointment) bool {
	blocking := p.SlotBlockingStates()
	for _, a := range existing {
		if sameSlot(key, a.Slot()) && a.State.In(blocking) {
			return true
		}
	}
	return false
}

func sameSlot(a, b domain.SlotKey) bool {
	ay, am, ad := a.Date.Date()
	by, bm, bd := b.Date.Date()
	return a.DoctorID == b.DoctorID && ay == by && am == bm && ad == bd && a.Time.Equal(b.Time)
}
