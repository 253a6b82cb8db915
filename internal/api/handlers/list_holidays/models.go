package list_holidays

import (
	"github.com/m04kA/SMC-AppointmentService/internal/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// HolidaysResponse HTTP response model
type HolidaysResponse struct {
	Year                 int       `json:"year"`
	MovableHolidaysKnown bool      `json:"movableHolidaysKnown"`
	Holidays             []Holiday `json:"holidays"`
}

// Holiday нерабочий день
type Holiday struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Movable bool   `json:"movable"`
}

// FromCalendar конвертирует праздники календаря в HTTP response
func FromCalendar(year int, holidays []calendar.Holiday) *HolidaysResponse {
	result := make([]Holiday, len(holidays))
	for i, h := range holidays {
		result[i] = Holiday{
			Date:    h.Date.Format(domain.DateFormat),
			Name:    h.Name,
			Movable: h.Movable,
		}
	}

	return &HolidaysResponse{
		Year:                 year,
		MovableHolidaysKnown: calendar.MovableHolidaysKnown(year),
		Holidays:             result,
	}
}
