package conflict

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var slotDate = time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)

func appt(id int64, state domain.AppointmentState) *domain.Appointment {
	return &domain.Appointment{ID: id, DoctorID: 7, Date: slotDate, Time: "09:30", State: state}
}

func TestBlockingStates(t *testing.T) {
	holding := []domain.AppointmentState{domain.StateActive, domain.StateInProgress}
	live := []domain.AppointmentState{domain.StatePending, domain.StateActive, domain.StateInProgress}

	assert.Equal(t, holding, Optimistic.BlockingStates(domain.StatePending))
	assert.Equal(t, holding, Optimistic.BlockingStates(domain.StateActive))
	assert.Equal(t, holding, Authoritative.BlockingStates(domain.StatePending))
	assert.Equal(t, live, Authoritative.BlockingStates(domain.StateActive))
	assert.Equal(t, live, Authoritative.BlockingStates(domain.StateInProgress))

	for _, st := range domain.TerminalStates {
		assert.Empty(t, Optimistic.BlockingStates(st))
		assert.Empty(t, Authoritative.BlockingStates(st))
	}
}

func TestCheck_PendingRequestsCoexist(t *testing.T) {
	existing := []*domain.Appointment{appt(1, domain.StatePending)}

	assert.NoError(t, Check(Optimistic, appt(0, domain.StatePending), existing))
}

func TestCheck_ActiveBlocksPending(t *testing.T) {
	existing := []*domain.Appointment{appt(1, domain.StateActive)}

	err := Check(Optimistic, appt(0, domain.StatePending), existing)

	var conflict *domain.SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.StateActive, conflict.State)
	assert.Equal(t, int64(1), conflict.AppointmentID)
}

func TestCheck_AuthoritativeActiveBlockedByPending(t *testing.T) {
	existing := []*domain.Appointment{appt(1, domain.StatePending)}

	assert.NoError(t, Check(Optimistic, appt(2, domain.StateActive), existing))
	assert.ErrorIs(t, Check(Authoritative, appt(2, domain.StateActive), existing), domain.ErrSlotConflict)
}

func TestCheck_IgnoresSelfAndOtherSlots(t *testing.T) {
	other := appt(3, domain.StateActive)
	other.Time = "10:00"

	existing := []*domain.Appointment{appt(2, domain.StateActive), other}

	assert.NoError(t, Check(Authoritative, appt(2, domain.StateActive), existing))
}

func TestCheck_TerminalTargetNeverConflicts(t *testing.T) {
	existing := []*domain.Appointment{appt(1, domain.StateActive)}

	assert.NoError(t, Check(Authoritative, appt(2, domain.StateCancelledByDoctor), existing))
}

func TestIsSlotBlocked(t *testing.T) {
	key := domain.SlotKey{DoctorID: 7, Date: slotDate, Time: "09:30"}

	pendingOnly := []*domain.Appointment{appt(1, domain.StatePending)}
	assert.False(t, IsSlotBlocked(Optimistic, key, pendingOnly))
	assert.True(t, IsSlotBlocked(Authoritative, key, pendingOnly))

	finished := []*domain.Appointment{appt(1, domain.StateAttended)}
	assert.False(t, IsSlotBlocked(Authoritative, key, finished))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Optimistic, p)

	_, err = ParsePolicy("strict")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
