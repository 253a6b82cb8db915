package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение слотов
// Должно быть задано ровно одно из DoctorID и SpecialtyID
type Request struct {
	DoctorID    int64           // ID врача
	SpecialtyID int64           // ID специальности (любой активный врач специальности)
	Date        time.Time       // Дата (без времени)
	Policy      conflict.Policy // Политика конфликтов, определяющая занятость слота
	Mode        domain.SlotMode // by_doctor или unique
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time
	DoctorID    int64
	SpecialtyID int64
	Mode        domain.SlotMode
	Slots       []domain.Slot

	// MovableHolidaysKnown false, если для года даты нет таблицы переходящих праздников
	MovableHolidaysKnown bool
}
