package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Service сервис чтения и удаления записей на прием
type Service struct {
	appointmentRepo  AppointmentRepository
	timeProvider     TimeProvider
	cancellationLead time.Duration
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	timeProvider TimeProvider,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		timeProvider:     timeProvider,
		cancellationLead: policy.CancellationLead,
		logger:           logger,
	}
}

// CanCancel проверяет, может ли пациент отменить запись сейчас
func (s *Service) CanCancel(appt *domain.Appointment) bool {
	return appt.CanCancel(s.timeProvider.Now(), s.cancellationLead)
}

// GetByID получает запись по ID с проверкой прав доступа
// Пациент видит только свои записи, врач - только записи к себе, персонал - любые
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetAppointment: appointment id=%d not found", id)
			return nil, &domain.NotFoundError{Entity: "appointment", ID: id}
		}
		s.logger.Error("GetAppointment: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canView(actor, appt) {
		s.logger.Warn("GetAppointment: actor=%d with role=%s has no access to appointment id=%d",
			actor.ID, actor.Role, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomain(appt, s.CanCancel(appt)), nil
}

// List возвращает записи по фильтру
// История пациента, расписание врача или общая доска персонала
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*models.AppointmentResponse, error) {
	filter := domain.AppointmentsFilter{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		SpecialtyID: req.SpecialtyID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		States:      req.States,
	}

	switch req.Actor.Role {
	case domain.RolePatient:
		filter.PatientID = ptr.Ptr(req.Actor.ID)
	case domain.RoleDoctor:
		filter.DoctorID = ptr.Ptr(req.Actor.ID)
	case domain.RoleStaff:
	default:
		s.logger.Warn("ListAppointments: unknown role=%s for actor=%d", req.Actor.Role, req.Actor.ID)
		return nil, ErrAccessDenied
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	list, err := s.appointmentRepo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("ListAppointments: failed to find appointments for actor=%d: %v", req.Actor.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.AppointmentResponse, 0, len(list))
	for _, appt := range list {
		result = append(result, models.FromDomain(appt, s.CanCancel(appt)))
	}

	s.logger.Info("ListAppointments: found %d appointments for actor=%d, role=%s",
		len(result), req.Actor.ID, req.Actor.Role)

	return result, nil
}

// Delete удаляет запись без каких-либо проверок состояния (только персонал)
func (s *Service) Delete(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("DeleteAppointment: appointment=%d by actor=%d", id, actor.ID)

	if actor.Role != domain.RoleStaff {
		s.logger.Warn("DeleteAppointment: actor=%d with role=%s is not staff", actor.ID, actor.Role)
		return ErrAccessDenied
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("DeleteAppointment: appointment id=%d not found", id)
			return &domain.NotFoundError{Entity: "appointment", ID: id}
		}
		s.logger.Error("DeleteAppointment: failed to delete appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAppointment: deleted appointment id=%d", id)
	return nil
}

func canView(actor domain.Actor, appt *domain.Appointment) bool {
	switch actor.Role {
	case domain.RoleStaff:
		return true
	case domain.RolePatient:
		return appt.PatientID == actor.ID
	case domain.RoleDoctor:
		return appt.DoctorID == actor.ID
	default:
		return false
	}
}
