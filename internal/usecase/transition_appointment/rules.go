package transition_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// doctorTransitions переходы, доступные врачу
var doctorTransitions = map[domain.AppointmentState][]domain.AppointmentState{
	domain.StateActive: {
		domain.StateInProgress,
		domain.StateAttended,
		domain.StateNoShow,
		domain.StateCancelledByDoctor,
	},
	domain.StateInProgress: {
		domain.StateAttended,
		domain.StateNoShow,
		domain.StateCancelledByDoctor,
	},
}

// plan результат проверки перехода
type plan struct {
	// policy политика конфликтов; пустая - проверка слота не нужна
	policy conflict.Policy
	// validation подтверждение pending заявки персоналом
	validation bool
}

// authorize проверяет, что actor может перевести appt в target в момент now
func authorize(
	actor domain.Actor,
	appt *domain.Appointment,
	target domain.AppointmentState,
	notes *string,
	now time.Time,
	cancellationLead time.Duration,
) (plan, error) {
	if appt.IsTerminal() {
		return plan{}, ErrAppointmentFinalized
	}

	if appt.State == target {
		return plan{}, fmt.Errorf("%w: appointment is already %s", ErrInvalidTransition, target)
	}

	switch actor.Role {
	case domain.RolePatient:
		return authorizePatient(actor, appt, target, notes, now, cancellationLead)
	case domain.RoleDoctor:
		return authorizeDoctor(actor, appt, target, now)
	case domain.RoleStaff:
		return authorizeStaff(appt, target), nil
	default:
		return plan{}, ErrAccessDenied
	}
}

// authorizePatient пациент может только отменить свою запись
func authorizePatient(
	actor domain.Actor,
	appt *domain.Appointment,
	target domain.AppointmentState,
	notes *string,
	now time.Time,
	cancellationLead time.Duration,
) (plan, error) {
	if appt.PatientID != actor.ID {
		return plan{}, ErrAccessDenied
	}
	if target != domain.StateCancelledByPatient {
		return plan{}, fmt.Errorf("%w: patient can only cancel", ErrInvalidTransition)
	}
	if notes != nil {
		return plan{}, fmt.Errorf("%w: patient cannot set clinician notes", ErrInvalidInput)
	}
	if appt.State != domain.StatePending && appt.State != domain.StateActive {
		return plan{}, fmt.Errorf("%w: cannot cancel appointment in state %s", ErrInvalidTransition, appt.State)
	}
	if err := appt.CancelGuard(now, cancellationLead); err != nil {
		return plan{}, err
	}
	return plan{}, nil
}

// authorizeDoctor врач отмечает ход приема, когда время приема наступило
func authorizeDoctor(
	actor domain.Actor,
	appt *domain.Appointment,
	target domain.AppointmentState,
	now time.Time,
) (plan, error) {
	if appt.DoctorID != actor.ID {
		return plan{}, ErrAccessDenied
	}
	if !target.In(doctorTransitions[appt.State]) {
		return plan{}, fmt.Errorf("%w: doctor cannot move %s to %s", ErrInvalidTransition, appt.State, target)
	}
	due, err := appt.IsDue(now)
	if err != nil {
		return plan{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !due {
		return plan{}, ErrNotYetDue
	}
	return plan{}, nil
}

// authorizeStaff персонал может выставить любой статус
// pending -> active - подтверждение заявки (conflict.Optimistic, соседние pending не мешают),
// остальные неконечные статусы проверяются по conflict.Authoritative
func authorizeStaff(appt *domain.Appointment, target domain.AppointmentState) plan {
	if appt.State == domain.StatePending && target == domain.StateActive {
		return plan{policy: conflict.Optimistic, validation: true}
	}
	if target.IsTerminal() {
		return plan{}
	}
	return plan{policy: conflict.Authoritative}
}
