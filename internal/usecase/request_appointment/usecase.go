package request_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const metricsSource = "patient"

// UseCase use case для создания заявки пациента на прием
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

// Execute создает заявку в статусе pending
//
// Несколько pending заявок на один слот могут сосуществовать,
// слот блокируют только записи active/en_atencion (conflict.Optimistic)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestAppointment: patient=%d, doctor=%d, specialty=%d, date=%s, time=%s",
		req.PatientID, req.DoctorID, req.SpecialtyID, req.Date.Format(domain.DateFormat), req.Time)

	result, err := uc.execute(ctx, req)
	uc.metrics.IncAppointmentRequest(metricsSource, resultLabel(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestAppointment: created appointment id=%d in state %s", result.ID, result.State)
	return newResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestAppointment: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Дата не в прошлом
	if domain.IsDateInPast(date, uc.timeProvider.Now()) {
		uc.logger.Warn("RequestAppointment: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 3. Рабочий день
	if ok, reason := calendar.IsWorkingDay(date); !ok {
		uc.logger.Warn("RequestAppointment: %s is not a working day: %s", date.Format(domain.DateFormat), reason)
		return nil, &domain.NotWorkingDayError{Reason: reason}
	}

	// 4. Врач активен и ведет прием по специальности
	doc, err := uc.doctors.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, uc.passOrInternal("get doctor", err)
	}
	if err := validateDoctor(doc, req.SpecialtyID); err != nil {
		uc.logger.Warn("RequestAppointment: %v", err)
		return nil, err
	}

	// 5. Время - слот одного из окон приема врача на этот день недели
	windows, err := uc.doctors.WindowsFor(ctx, models.Target{DoctorID: req.DoctorID}, date)
	if err != nil {
		return nil, uc.passOrInternal("resolve windows", err)
	}
	if err := validateSlot(windows, req); err != nil {
		uc.logger.Warn("RequestAppointment: %v", err)
		return nil, err
	}

	candidate := &domain.Appointment{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		SpecialtyID: req.SpecialtyID,
		Date:        date,
		Time:        req.Time,
		State:       domain.StatePending,
		Reason:      req.Reason,
	}

	// 6. Блокировка слота + сериализуемая транзакция
	var created *domain.Appointment
	err = uc.locker.WithSlotLock(ctx, candidate.Slot(), func(lockedCtx context.Context) error {
		return uc.txManager.DoSerializable(lockedCtx, func(txCtx context.Context) error {
			// 6.1. Записи слота с блокировкой строк (FOR UPDATE)
			existing, err := uc.appointmentRepo.Find(txCtx, domain.SlotFilter(candidate.Slot(), conflict.Optimistic.BlockingStates(candidate.State)))
			if err != nil {
				uc.logger.Error("RequestAppointment: failed to find slot appointments: %v", err)
				return fmt.Errorf("%w: failed to find slot appointments: %w", ErrInternal, err)
			}

			// 6.2. Проверка конфликта
			if err := conflict.Check(conflict.Optimistic, candidate, existing); err != nil {
				return err
			}

			// 6.3. Сохраняем заявку
			c, err := uc.appointmentRepo.Create(txCtx, candidate)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrSlotTaken) {
					return &domain.SlotConflictError{State: domain.StateActive}
				}
				uc.logger.Error("RequestAppointment: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
			}

			created = c
			return nil
		})
	})

	if err != nil {
		return nil, uc.translateCommitError(err)
	}

	return created, nil
}

// translateCommitError переводит ошибки блокировки и транзакции в доменные
func (uc *UseCase) translateCommitError(err error) error {
	var conflictErr *domain.SlotConflictError

	switch {
	case errors.As(err, &conflictErr):
		uc.metrics.IncSlotConflict(conflict.Optimistic.String(), conflictErr.State.String())
		uc.logger.Warn("RequestAppointment: slot conflict: %v", err)
		return err
	case errors.Is(err, lock.ErrLockNotAcquired):
		uc.metrics.IncSlotLockContention()
		uc.logger.Warn("RequestAppointment: slot is locked by another request")
		return ErrSlotBusy
	case errors.Is(err, txmanager.ErrRetriesExhausted):
		uc.logger.Warn("RequestAppointment: serialization retries exhausted: %v", err)
		return ErrSlotBusy
	case errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("RequestAppointment: failed to commit appointment: %v", err)
		return fmt.Errorf("%w: failed to commit appointment: %v", ErrInternal, err)
	}
}

// passOrInternal пропускает доменные ошибки справочника врачей, остальные оборачивает в ErrInternal
func (uc *UseCase) passOrInternal(op string, err error) error {
	if errors.Is(err, domain.ErrEntityNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		uc.logger.Warn("RequestAppointment: failed to %s: %v", op, err)
		return err
	}
	uc.logger.Error("RequestAppointment: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
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
