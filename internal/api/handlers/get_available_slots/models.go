package get_available_slots

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

var (
	errInvalidDoctorID    = errors.New("invalid doctorId")
	errInvalidSpecialtyID = errors.New("invalid specialtyId")
	errInvalidDate        = errors.New("invalid date")
	errInvalidPolicy      = errors.New("invalid policy")
	errInvalidMode        = errors.New("invalid mode")
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                 string          `json:"date"`
	DoctorID             int64           `json:"doctorId,omitempty"`
	SpecialtyID          int64           `json:"specialtyId,omitempty"`
	Mode                 string          `json:"mode"`
	MovableHolidaysKnown bool            `json:"movableHolidaysKnown"`
	Slots                []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	DoctorID  int64  `json:"doctorId,omitempty"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.String(),
			DoctorID:  slot.DoctorID,
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:                 resp.Date.Format(domain.DateFormat),
		DoctorID:             resp.DoctorID,
		SpecialtyID:          resp.SpecialtyID,
		Mode:                 string(resp.Mode),
		MovableHolidaysKnown: resp.MovableHolidaysKnown,
		Slots:                slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// doctorId, specialtyId, date (YYYY-MM-DD), policy (optimistic|authoritative), mode (by_doctor|unique)
func ToUseCaseRequest(q url.Values) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{}

	if s := q.Get("doctorId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errInvalidDoctorID
		}
		req.DoctorID = id
	}

	if s := q.Get("specialtyId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errInvalidSpecialtyID
		}
		req.SpecialtyID = id
	}

	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		return nil, errInvalidDate
	}
	req.Date = date

	req.Policy, err = conflict.ParsePolicy(q.Get("policy"))
	if err != nil {
		return nil, errInvalidPolicy
	}

	req.Mode, err = domain.ParseSlotMode(q.Get("mode"))
	if err != nil {
		return nil, errInvalidMode
	}

	return req, nil
}
