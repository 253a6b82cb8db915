package clock

import "time"

// Real провайдер текущего времени для production
// Время приводится к часовому поясу клиники
type Real struct {
	Location *time.Location
}

// NewReal создает провайдер в указанном часовом поясе (nil = time.Local)
func NewReal(loc *time.Location) *Real {
	if loc == nil {
		loc = time.Local
	}
	return &Real{Location: loc}
}

// Now возвращает текущее время
func (c *Real) Now() time.Time {
	return time.Now().In(c.Location)
}

// Fixed провайдер с зафиксированным временем (тесты, воспроизводимые сценарии)
type Fixed struct {
	At time.Time
}

// Now возвращает зафиксированное время
func (c *Fixed) Now() time.Time {
	return c.At
}
