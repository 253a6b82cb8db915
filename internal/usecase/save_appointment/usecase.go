package save_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const metricsSource = "staff"

// UseCase use case для создания и редактирования записи персоналом клиники
//
// Персонал может выставить любой статус; проверка конфликтов идет по conflict.Authoritative:
// запись, переводимая в active/en_atencion, не должна пересекаться даже с pending заявками
// Рабочий день не проверяется (административное решение), прошедшая дата - проверяется
type UseCase struct {
	doctors         DoctorDirectory
	appointmentRepo AppointmentRepository
	locker          SlotLocker
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctors DoctorDirectory,
	appointmentRepo AppointmentRepository,
	locker SlotLocker,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctors:         doctors,
		appointmentRepo: appointmentRepo,
		locker:          locker,
		txManager:       txManager,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute создает (req.ID == 0) или редактирует запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SaveAppointment: id=%d, patient=%d, doctor=%d, date=%s, time=%s, state=%s by actor=%d",
		req.ID, req.PatientID, req.DoctorID, req.Date.Format(domain.DateFormat), req.Time, req.State, req.Actor.ID)

	saved, err := uc.execute(ctx, req)
	if req.IsCreate() {
		uc.metrics.IncAppointmentRequest(metricsSource, resultLabel(err))
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SaveAppointment: saved appointment id=%d in state %s", saved.ID, saved.State)
	return newResponse(saved, req.IsCreate()), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Только персонал
	if req.Actor.Role != domain.RoleStaff {
		uc.logger.Warn("SaveAppointment: actor=%d with role=%s is not staff", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SaveAppointment: validation failed: %v", err)
		return nil, err
	}

	candidate := &domain.Appointment{
		ID:          req.ID,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		SpecialtyID: req.SpecialtyID,
		Date:        domain.DateOnly(req.Date),
		Time:        req.Time,
		State:       req.State,
		Reason:      req.Reason,
		Notes:       req.Notes,
	}

	// 3. Врач существует и ведет прием по специальности
	doc, err := uc.doctors.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) {
			uc.logger.Warn("SaveAppointment: %v", err)
			return nil, err
		}
		uc.logger.Error("SaveAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	if !doc.HasSpecialty(req.SpecialtyID) {
		uc.logger.Warn("SaveAppointment: doctor id=%d does not attend specialty id=%d", req.DoctorID, req.SpecialtyID)
		return nil, fmt.Errorf("%w: doctor id=%d does not attend specialty id=%d",
			ErrDoctorUnavailable, req.DoctorID, req.SpecialtyID)
	}

	now := uc.timeProvider.Now()

	// 4. Блокировка слота + сериализуемая транзакция
	var saved *domain.Appointment
	var previous domain.AppointmentState

	err = uc.locker.WithSlotLock(ctx, candidate.Slot(), func(lockedCtx context.Context) error {
		return uc.txManager.DoSerializable(lockedCtx, func(txCtx context.Context) error {
			// 4.1. При редактировании читаем текущую запись (FOR UPDATE)
			var current *domain.Appointment
			if !req.IsCreate() {
				c, err := uc.appointmentRepo.GetByID(txCtx, req.ID)
				if err != nil {
					if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
						uc.logger.Warn("SaveAppointment: appointment id=%d not found", req.ID)
						return &domain.NotFoundError{Entity: "appointment", ID: req.ID}
					}
					uc.logger.Error("SaveAppointment: failed to get appointment id=%d: %v", req.ID, err)
					return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
				}
				current = c
				previous = c.State
			}

			// 4.2. Прошедшая дата: для новой записи и при переносе на другую дату
			if movesToDate(current, candidate) && domain.IsDateInPast(candidate.Date, now) {
				uc.logger.Warn("SaveAppointment: date %s is in the past", candidate.Date.Format(domain.DateFormat))
				return ErrPastDate
			}

			// 4.3. Проверка конфликта (кроме самой записи)
			blocking := conflict.Authoritative.BlockingStates(candidate.State)
			if len(blocking) > 0 {
				filter := domain.SlotFilter(candidate.Slot(), blocking)
				if !req.IsCreate() {
					filter.ExcludeID = ptr.Ptr(req.ID)
				}

				existing, err := uc.appointmentRepo.Find(txCtx, filter)
				if err != nil {
					uc.logger.Error("SaveAppointment: failed to find slot appointments: %v", err)
					return fmt.Errorf("%w: failed to find slot appointments: %w", ErrInternal, err)
				}

				if err := conflict.Check(conflict.Authoritative, candidate, existing); err != nil {
					return err
				}
			}

			// 4.4. Сохраняем
			var err error
			if req.IsCreate() {
				saved, err = uc.appointmentRepo.Create(txCtx, candidate)
			} else {
				saved, err = uc.appointmentRepo.Update(txCtx, candidate)
			}
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrSlotTaken) {
					return &domain.SlotConflictError{State: domain.StateActive}
				}
				if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
					return &domain.NotFoundError{Entity: "appointment", ID: req.ID}
				}
				uc.logger.Error("SaveAppointment: failed to save appointment: %v", err)
				return fmt.Errorf("%w: failed to save appointment: %w", ErrInternal, err)
			}

			return nil
		})
	})

	if err != nil {
		return nil, uc.translateCommitError(err)
	}

	if !req.IsCreate() && previous != saved.State {
		uc.metrics.IncStateTransition(previous.String(), saved.State.String())
	}

	return saved, nil
}

// translateCommitError переводит ошибки блокировки и транзакции в доменные
func (uc *UseCase) translateCommitError(err error) error {
	var conflictErr *domain.SlotConflictError

	switch {
	case errors.As(err, &conflictErr):
		uc.metrics.IncSlotConflict(conflict.Authoritative.String(), conflictErr.State.String())
		uc.logger.Warn("SaveAppointment: slot conflict: %v", err)
		return err
	case errors.Is(err, lock.ErrLockNotAcquired):
		uc.metrics.IncSlotLockContention()
		uc.logger.Warn("SaveAppointment: slot is locked by another request")
		return ErrSlotBusy
	case errors.Is(err, txmanager.ErrRetriesExhausted):
		uc.logger.Warn("SaveAppointment: serialization retries exhausted: %v", err)
		return ErrSlotBusy
	case errors.Is(err, ErrPastDate), errors.Is(err, domain.ErrEntityNotFound), errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("SaveAppointment: failed to commit appointment: %v", err)
		return fmt.Errorf("%w: failed to commit appointment: %v", ErrInternal, err)
	}
}

// movesToDate возвращает true для новой записи или если дата записи меняется
func movesToDate(current, candidate *domain.Appointment) bool {
	if current == nil {
		return true
	}
	cy, cm, cd := current.Date.Date()
	ny, nm, nd := candidate.Date.Date()
	return cy != ny || cm != nm || cd != nd
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, domain.ErrSlotConflict), errors.Is(err, domain.ErrSlotBusy):
		return "conflict"
	case errors.Is(err, ErrInternal):
		return "error"
	default:
		return "rejected"
	}
}
