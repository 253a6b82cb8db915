package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case для получения слотов записи на прием
type UseCase struct {
	availability    AvailabilityResolver
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityResolver,
	appointmentRepo AppointmentRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availability,
		appointmentRepo: appointmentRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
// Для сегодняшней даты уже прошедшие слоты не отфильтровываются и приходят как available:true, это учитывает вызывающая сторона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, specialty=%d, date=%s, policy=%s, mode=%s",
		req.DoctorID, req.SpecialtyID, req.Date.Format(domain.DateFormat), req.Policy, req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	policy, _ := conflict.ParsePolicy(string(req.Policy))
	mode, _ := domain.ParseSlotMode(string(req.Mode))
	date := domain.DateOnly(req.Date)

	// 2. Дата не в прошлом
	if domain.IsDateInPast(date, uc.timeProvider.Now()) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 3. Рабочий день
	if ok, reason := calendar.IsWorkingDay(date); !ok {
		uc.logger.Warn("GetAvailableSlots: %s is not a working day: %s", date.Format(domain.DateFormat), reason)
		return nil, &domain.NotWorkingDayError{Reason: reason}
	}

	holidaysKnown := calendar.MovableHolidaysKnown(date.Year())
	if !holidaysKnown {
		uc.logger.Warn("GetAvailableSlots: movable holidays for year %d are unknown", date.Year())
	}

	response := &Response{
		Date:                 date,
		DoctorID:             req.DoctorID,
		SpecialtyID:          req.SpecialtyID,
		Mode:                 mode,
		Slots:                []domain.Slot{},
		MovableHolidaysKnown: holidaysKnown,
	}

	// 4. Окна приема на день недели
	windows, err := uc.availability.WindowsFor(ctx, models.Target{DoctorID: req.DoctorID, SpecialtyID: req.SpecialtyID}, date)
	if err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			uc.logger.Warn("GetAvailableSlots: failed to resolve windows: %v", err)
			return nil, err
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve windows: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve windows: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no availability windows on %s", date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Записи, занимающие слоты на эту дату
	filter := domain.AppointmentsFilter{
		DateFrom: &date,
		DateTo:   &date,
		States:   policy.SlotBlockingStates(),
	}
	if req.DoctorID > 0 {
		filter.DoctorID = ptr.Ptr(req.DoctorID)
	}

	existing, err := uc.appointmentRepo.Find(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to find appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to find appointments: %v", ErrInternal, err)
	}

	// 6. Разворачиваем окна в слоты
	slots, err := slotsFor(windows, date, existing, policy)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if mode == domain.SlotModeUnique {
		slots = uniqueByTime(slots)
	}

	response.Slots = slots

	uc.logger.Info("GetAvailableSlots: generated %d slots for doctor=%d, specialty=%d, date=%s",
		len(slots), req.DoctorID, req.SpecialtyID, date.Format(domain.DateFormat))

	return response, nil
}
