package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
)

// Service сервис окон приема врачей
type Service struct {
	doctorRepo DoctorRepository
	hours      domain.ClinicHours
	logger     Logger
}

// NewService создает новый экземпляр сервиса окон приема
func NewService(doctorRepo DoctorRepository, hours domain.ClinicHours, logger Logger) *Service {
	return &Service{
		doctorRepo: doctorRepo,
		hours:      hours,
		logger:     logger,
	}
}

// WindowsFor возвращает активные окна приема на день недели даты
// Для специальности - объединение окон всех активных врачей специальности
// Пустой список означает отсутствие приема, а не ошибку
// Рабочий ли это день, здесь не проверяется
func (s *Service) WindowsFor(ctx context.Context, target models.Target, date time.Time) ([]*domain.AvailabilityWindow, error) {
	weekday := domain.WeekdayIndex(date)

	doctorIDs, err := s.resolveDoctors(ctx, target)
	if err != nil {
		return nil, err
	}
	if len(doctorIDs) == 0 {
		s.logger.Info("WindowsFor: no active doctors for doctor=%d, specialty=%d", target.DoctorID, target.SpecialtyID)
		return []*domain.AvailabilityWindow{}, nil
	}

	windows, err := s.doctorRepo.ListWindows(ctx, doctorIDs, weekday)
	if err != nil {
		s.logger.Error("WindowsFor: failed to list windows for doctors=%v, weekday=%d: %v", doctorIDs, weekday, err)
		return nil, fmt.Errorf("%w: WindowsFor - repository error: %v", ErrInternal, err)
	}

	return windows, nil
}

// GetDoctor получает врача по ID
func (s *Service) GetDoctor(ctx context.Context, doctorID int64) (*domain.Doctor, error) {
	doc, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("GetDoctor: doctor id=%d not found", doctorID)
			return nil, &domain.NotFoundError{Entity: "doctor", ID: doctorID}
		}
		s.logger.Error("GetDoctor: repository error for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetDoctor - repository error: %v", ErrInternal, err)
	}
	return doc, nil
}

// SaveWindow создает или обновляет окно приема (только персонал клиники)
// Окно с тем же (врач, день недели, начало) перезаписывается
func (s *Service) SaveWindow(ctx context.Context, req *models.SaveWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("SaveWindow: doctor=%d, weekday=%d, %s-%s by actor=%d",
		req.DoctorID, req.Weekday, req.Start, req.End, req.Actor.ID)

	if req.Actor.Role != domain.RoleStaff {
		s.logger.Warn("SaveWindow: actor=%d with role=%s is not staff", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	window := req.ToDomain()
	if err := window.Validate(s.hours); err != nil {
		s.logger.Warn("SaveWindow: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.GetDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	saved, err := s.doctorRepo.UpsertWindow(ctx, window)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrInvalidWindow) {
			s.logger.Warn("SaveWindow: window rejected by database: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
		s.logger.Error("SaveWindow: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: SaveWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveWindow: saved window id=%d for doctor=%d", saved.ID, saved.DoctorID)
	return models.FromDomainWindow(saved), nil
}

// DeleteWindow удаляет окно приема (только персонал клиники)
func (s *Service) DeleteWindow(ctx context.Context, actor domain.Actor, doctorID, windowID int64) error {
	s.logger.Info("DeleteWindow: doctor=%d, window=%d by actor=%d", doctorID, windowID, actor.ID)

	if actor.Role != domain.RoleStaff {
		s.logger.Warn("DeleteWindow: actor=%d with role=%s is not staff", actor.ID, actor.Role)
		return ErrAccessDenied
	}

	if err := s.doctorRepo.DeleteWindow(ctx, doctorID, windowID); err != nil {
		if errors.Is(err, doctorRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d of doctor=%d not found", windowID, doctorID)
			return &domain.NotFoundError{Entity: "availability window", ID: windowID}
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", windowID, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: deleted window id=%d", windowID)
	return nil
}

// resolveDoctors возвращает ID активных врачей цели
func (s *Service) resolveDoctors(ctx context.Context, target models.Target) ([]int64, error) {
	if (target.DoctorID > 0) == (target.SpecialtyID > 0) {
		return nil, fmt.Errorf("%w: exactly one of doctorID and specialtyID is required", ErrInvalidInput)
	}

	if !target.IsSpecialty() {
		doc, err := s.GetDoctor(ctx, target.DoctorID)
		if err != nil {
			return nil, err
		}
		if !doc.Active {
			return nil, nil
		}
		return []int64{doc.ID}, nil
	}

	specialty, err := s.doctorRepo.GetSpecialty(ctx, target.SpecialtyID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrSpecialtyNotFound) {
			s.logger.Warn("WindowsFor: specialty id=%d not found", target.SpecialtyID)
			return nil, &domain.NotFoundError{Entity: "specialty", ID: target.SpecialtyID}
		}
		s.logger.Error("WindowsFor: repository error for specialty id=%d: %v", target.SpecialtyID, err)
		return nil, fmt.Errorf("%w: WindowsFor - repository error: %v", ErrInternal, err)
	}
	if !specialty.Active {
		return nil, nil
	}

	doctors, err := s.doctorRepo.ListActiveBySpecialty(ctx, target.SpecialtyID)
	if err != nil {
		s.logger.Error("WindowsFor: failed to list doctors of specialty id=%d: %v", target.SpecialtyID, err)
		return nil, fmt.Errorf("%w: WindowsFor - repository error: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
