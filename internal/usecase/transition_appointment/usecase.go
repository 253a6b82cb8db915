package transition_appointment

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для смены статуса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	locker          SlotLocker
	txManager       TransactionManager
	timeProvider    TimeProvider
	policy          domain.BookingPolicy
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	locker SlotLocker,
	txManager TransactionManager,
	timeProvider TimeProvider,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		locker:          locker,
		txManager:       txManager,
		timeProvider:    timeProvider,
		policy:          policy,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute переводит запись в TargetState от имени Actor
//
// Обновление условное (WHERE id = ? AND state = ?): если статус изменился
// между чтением и записью, возвращается ErrConcurrentUpdate
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionAppointment: appointment=%d, target=%s by actor=%d, role=%s",
		req.AppointmentID, req.TargetState, req.Actor.ID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем запись, чтобы узнать слот для блокировки
	appt, err := uc.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	var response *Response

	// 3. Блокировка слота + сериализуемая транзакция
	err = uc.locker.WithSlotLock(ctx, appt.Slot(), func(lockedCtx context.Context) error {
		return uc.txManager.DoSerializable(lockedCtx, func(txCtx context.Context) error {
			// 3.1. Перечитываем запись под блокировкой строки (FOR UPDATE)
			current, err := uc.getAppointment(txCtx, req.AppointmentID)
			if err != nil {
				return err
			}

			// 3.2. Права и охранные условия перехода
			p, err := authorize(req.Actor, current, req.TargetState, req.Notes, uc.timeProvider.Now(), uc.policy.CancellationLead)
			if err != nil {
				uc.logger.Warn("TransitionAppointment: appointment=%d %s -> %s rejected: %v",
					current.ID, current.State, req.TargetState, err)
				return err
			}

			// 3.3. Проверка конфликта слота
			if p.policy != "" {
				if err := uc.checkSlot(txCtx, p.policy, current, req.TargetState); err != nil {
					return err
				}
			}

			// 3.4. Условное обновление статуса
			if err := uc.appointmentRepo.UpdateState(txCtx, current.ID, current.State, req.TargetState, req.Notes); err != nil {
				if errors.Is(err, appointmentRepo.ErrStateChanged) {
					return ErrConcurrentUpdate
				}
				if errors.Is(err, appointmentRepo.ErrSlotTaken) {
					return &domain.SlotConflictError{State: domain.StateActive}
				}
				uc.logger.Error("TransitionAppointment: failed to update state of appointment=%d: %v", current.ID, err)
				return fmt.Errorf("%w: failed to update state: %w", ErrInternal, err)
			}

			response = &Response{
				ID:          current.ID,
				PatientID:   current.PatientID,
				DoctorID:    current.DoctorID,
				Date:        current.Date,
				Time:        current.Time,
				FromState:   current.State,
				State:       req.TargetState,
				RejectedIDs: []int64{},
			}

			// 3.5. Отклоняем соседние pending заявки, если так настроено
			if p.validation && uc.policy.RejectSiblingsOnValidate {
				ids, err := uc.appointmentRepo.RejectPendingSiblings(txCtx, current.Slot(), current.ID)
				if err != nil {
					uc.logger.Error("TransitionAppointment: failed to reject siblings of appointment=%d: %v", current.ID, err)
					return fmt.Errorf("%w: failed to reject siblings: %w", ErrInternal, err)
				}
				response.RejectedIDs = ids
			}

			return nil
		})
	})

	if err != nil {
		return nil, uc.translateCommitError(err)
	}

	uc.metrics.IncStateTransition(response.FromState.String(), response.State.String())
	for range response.RejectedIDs {
		uc.metrics.IncStateTransition(domain.StatePending.String(), domain.StateRejected.String())
	}

	uc.logger.Info("TransitionAppointment: appointment=%d moved %s -> %s, rejected siblings=%v",
		response.ID, response.FromState, response.State, response.RejectedIDs)

	return response, nil
}

// checkSlot проверяет, что запись может занять слот в статусе target
func (uc *UseCase) checkSlot(ctx context.Context, policy conflict.Policy, appt *domain.Appointment, target domain.AppointmentState) error {
	blocking := policy.BlockingStates(target)
	if len(blocking) == 0 {
		return nil
	}

	filter := domain.SlotFilter(appt.Slot(), blocking)
	filter.ExcludeID = &appt.ID

	existing, err := uc.appointmentRepo.Find(ctx, filter)
	if err != nil {
		uc.logger.Error("TransitionAppointment: failed to find slot appointments: %v", err)
		return fmt.Errorf("%w: failed to find slot appointments: %w", ErrInternal, err)
	}

	candidate := *appt
	candidate.State = target

	if err := conflict.Check(policy, &candidate, existing); err != nil {
		var conflictErr *domain.SlotConflictError
		if errors.As(err, &conflictErr) {
			uc.metrics.IncSlotConflict(policy.String(), conflictErr.State.String())
		}
		uc.logger.Warn("TransitionAppointment: slot conflict for appointment=%d: %v", appt.ID, err)
		return err
	}

	return nil
}

func (uc *UseCase) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("TransitionAppointment: appointment id=%d not found", id)
			return nil, &domain.NotFoundError{Entity: "appointment", ID: id}
		}
		uc.logger.Error("TransitionAppointment: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appt, nil
}

// translateCommitError переводит ошибки блокировки и транзакции в доменные
func (uc *UseCase) translateCommitError(err error) error {
	switch {
	case errors.Is(err, lock.ErrLockNotAcquired):
		uc.metrics.IncSlotLockContention()
		uc.logger.Warn("TransitionAppointment: slot is locked by another request")
		return ErrSlotBusy
	case errors.Is(err, txmanager.ErrRetriesExhausted):
		uc.logger.Warn("TransitionAppointment: serialization retries exhausted: %v", err)
		return ErrConcurrentUpdate
	case errors.Is(err, ErrConcurrentUpdate):
		uc.logger.Warn("TransitionAppointment: appointment state changed concurrently")
		return err
	case errors.Is(err, ErrInternal),
		errors.Is(err, domain.ErrSlotConflict),
		errors.Is(err, domain.ErrEntityNotFound),
		errors.Is(err, ErrAppointmentFinalized),
		errors.Is(err, ErrInsufficientLeadTime),
		errors.Is(err, ErrNotYetDue),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidInput):
		return err
	default:
		uc.logger.Error("TransitionAppointment: failed to commit transition: %v", err)
		return fmt.Errorf("%w: failed to commit transition: %v", ErrInternal, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Actor.ID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if !req.TargetState.IsValid() {
		return fmt.Errorf("%w: unknown target state %q", ErrInvalidInput, req.TargetState)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
