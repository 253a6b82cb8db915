package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/clock"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeResolver struct {
	byDoctor    map[int64][]*domain.AvailabilityWindow
	bySpecialty map[int64][]*domain.AvailabilityWindow
	err         error
}

func (f *fakeResolver) WindowsFor(_ context.Context, target models.Target, date time.Time) ([]*domain.AvailabilityWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	source := f.byDoctor[target.DoctorID]
	if target.IsSpecialty() {
		source = f.bySpecialty[target.SpecialtyID]
	}
	result := make([]*domain.AvailabilityWindow, 0)
	for _, w := range source {
		if w.Weekday == domain.WeekdayIndex(date) {
			result = append(result, w)
		}
	}
	return result, nil
}

type fakeAppointmentRepo struct {
	items []*domain.Appointment
	err   error
}

func (f *fakeAppointmentRepo) Find(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if len(filter.States) > 0 && !a.State.In(filter.States) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	// Tuesday, not a holiday
	tuesday = time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	now     = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	windowD1 = &domain.AvailabilityWindow{ID: 1, DoctorID: 1, Weekday: 1, Start: "09:00", End: "13:00", Active: true}
	windowD2 = &domain.AvailabilityWindow{ID: 2, DoctorID: 2, Weekday: 1, Start: "09:00", End: "10:00", Active: true}
)

func newTestUseCase(appointments ...*domain.Appointment) (*UseCase, *fakeAppointmentRepo) {
	resolver := &fakeResolver{
		byDoctor: map[int64][]*domain.AvailabilityWindow{
			1: {windowD1},
			2: {windowD2},
		},
		bySpecialty: map[int64][]*domain.AvailabilityWindow{
			7: {windowD1, windowD2},
		},
	}
	repo := &fakeAppointmentRepo{items: appointments}
	return NewUseCase(resolver, repo, &clock.Fixed{At: now}, nopLogger{}), repo
}

func times(slots []domain.Slot) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Time)
	}
	return result
}

func TestExecute_EightFreeSlotsForTuesdayWindow(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: tuesday})

	require.NoError(t, err)
	assert.True(t, resp.MovableHolidaysKnown)
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"},
		times(resp.Slots))
	for _, s := range resp.Slots {
		assert.True(t, s.Available, s.Time)
		assert.Equal(t, int64(1), s.DoctorID)
	}
}

func TestExecute_ActiveBookingMarksSlotTaken(t *testing.T) {
	uc, _ := newTestUseCase(&domain.Appointment{
		ID: 10, PatientID: 5, DoctorID: 1, Date: tuesday, Time: "09:30", State: domain.StateActive,
	})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: tuesday})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 8)
	for _, s := range resp.Slots {
		assert.Equal(t, s.Time != "09:30", s.Available, s.Time)
	}
}

func TestExecute_PendingBlocksOnlyUnderAuthoritativePolicy(t *testing.T) {
	pending := &domain.Appointment{ID: 11, PatientID: 5, DoctorID: 1, Date: tuesday, Time: "10:00", State: domain.StatePending}
	ctx := context.Background()

	uc, _ := newTestUseCase(pending)
	resp, err := uc.Execute(ctx, &Request{DoctorID: 1, Date: tuesday, Policy: conflict.Optimistic})
	require.NoError(t, err)
	assert.True(t, resp.Slots[2].Available)

	resp, err = uc.Execute(ctx, &Request{DoctorID: 1, Date: tuesday, Policy: conflict.Authoritative})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[2].Time)
	assert.False(t, resp.Slots[2].Available)
}

func TestExecute_TerminalAppointmentsDoNotBlock(t *testing.T) {
	uc, _ := newTestUseCase(&domain.Appointment{
		ID: 12, DoctorID: 1, Date: tuesday, Time: "09:00", State: domain.StateCancelledByPatient,
	})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: tuesday, Policy: conflict.Authoritative})

	require.NoError(t, err)
	assert.True(t, resp.Slots[0].Available)
}

func TestExecute_SpecialtyByDoctorAndUnique(t *testing.T) {
	busy := &domain.Appointment{ID: 13, DoctorID: 1, Date: tuesday, Time: "09:00", State: domain.StateActive}
	bothBusy := []*domain.Appointment{
		busy,
		{ID: 14, DoctorID: 2, Date: tuesday, Time: "09:30", State: domain.StateInProgress},
		{ID: 15, DoctorID: 1, Date: tuesday, Time: "09:30", State: domain.StateActive},
	}
	ctx := context.Background()

	uc, _ := newTestUseCase(bothBusy...)

	resp, err := uc.Execute(ctx, &Request{SpecialtyID: 7, Date: tuesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 10)
	assert.Equal(t, domain.Slot{Time: "09:00", DoctorID: 1, Available: false}, resp.Slots[0])
	assert.Equal(t, domain.Slot{Time: "09:00", DoctorID: 2, Available: true}, resp.Slots[1])
	assert.Equal(t, domain.Slot{Time: "09:30", DoctorID: 1, Available: false}, resp.Slots[2])
	assert.Equal(t, domain.Slot{Time: "09:30", DoctorID: 2, Available: false}, resp.Slots[3])

	resp, err = uc.Execute(ctx, &Request{SpecialtyID: 7, Date: tuesday, Mode: domain.SlotModeUnique})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, domain.Slot{Time: "09:00", Available: true}, resp.Slots[0])
	assert.Equal(t, domain.Slot{Time: "09:30", Available: false}, resp.Slots[1])
	assert.Equal(t, domain.Slot{Time: "10:00", Available: true}, resp.Slots[2])
}

func TestExecute_Guards(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no target", req: &Request{Date: tuesday}, wantErr: domain.ErrInvalidInput},
		{name: "both targets", req: &Request{DoctorID: 1, SpecialtyID: 7, Date: tuesday}, wantErr: domain.ErrInvalidInput},
		{name: "no date", req: &Request{DoctorID: 1}, wantErr: domain.ErrInvalidInput},
		{name: "unknown policy", req: &Request{DoctorID: 1, Date: tuesday, Policy: "greedy"}, wantErr: domain.ErrInvalidInput},
		{name: "unknown mode", req: &Request{DoctorID: 1, Date: tuesday, Mode: "all"}, wantErr: domain.ErrInvalidInput},
		{name: "past date", req: &Request{DoctorID: 1, Date: now.AddDate(0, 0, -1)}, wantErr: domain.ErrPastDate},
		{name: "weekend", req: &Request{DoctorID: 1, Date: time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)}, wantErr: domain.ErrNotWorkingDay},
		{name: "holiday", req: &Request{DoctorID: 1, Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)}, wantErr: domain.ErrNotWorkingDay},
	}

	uc, _ := newTestUseCase()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_HolidayReason(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.timeProvider = &clock.Fixed{At: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC)})

	var notWorking *domain.NotWorkingDayError
	require.ErrorAs(t, err, &notWorking)
	assert.Equal(t, "Viernes Santo", notWorking.Reason)
}

func TestExecute_UnknownMovableHolidaysIsReported(t *testing.T) {
	uc, _ := newTestUseCase()
	// 2030-09-03 is a Tuesday
	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: time.Date(2030, 9, 3, 0, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	assert.False(t, resp.MovableHolidaysKnown)
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_NoWindowsIsEmptyNotError(t *testing.T) {
	uc, _ := newTestUseCase()
	// Wednesday, doctor 1 works only on Tuesdays
	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: tuesday.AddDate(0, 0, 1)})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_RepositoryFailureIsInternal(t *testing.T) {
	uc, repo := newTestUseCase()
	repo.err = errors.New("connection refused")

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: tuesday})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestSlotsFor_PartialTailAndOverlappingWindows(t *testing.T) {
	tail := []*domain.AvailabilityWindow{
		{DoctorID: 1, Weekday: 1, Start: "09:00", End: "10:15"},
	}

	slots, err := slotsFor(tail, tuesday, nil, conflict.Optimistic)

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, times(slots))

	overlapping := []*domain.AvailabilityWindow{
		{DoctorID: 1, Weekday: 1, Start: "09:00", End: "10:15"},
		{DoctorID: 1, Weekday: 1, Start: "09:30", End: "11:00"},
	}

	slots, err = slotsFor(overlapping, tuesday, nil, conflict.Optimistic)

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, times(slots))
}
