package calendar

import (
	"sort"
	"time"
)

// WeekendReason reason returned for Saturdays and Sundays
const WeekendReason = "Fin de semana"

// Holiday a non-working day with its display name
type Holiday struct {
	Date    time.Time
	Name    string
	Movable bool
}

// IsWeekend reports whether date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// HolidayFor returns the holiday name for date, if any
// 2 April 2026 is both Malvinas Day and Holy Thursday; the fixed holiday wins
func HolidayFor(date time.Time) (string, bool) {
	md := monthDay{month: date.Month(), day: date.Day()}

	if name, ok := fixedHolidays[md]; ok {
		return name, true
	}
	if byYear, ok := movableHolidays[date.Year()]; ok {
		if name, ok := byYear[md]; ok {
			return name, true
		}
	}
	return "", false
}

// IsWorkingDay reports whether appointments may be scheduled on date
// When false, reason is WeekendReason or the holiday name
func IsWorkingDay(date time.Time) (bool, string) {
	if IsWeekend(date) {
		return false, WeekendReason
	}
	if name, ok := HolidayFor(date); ok {
		return false, name
	}
	return true, ""
}

// MovableHolidaysKnown reports whether the movable holiday table covers year
func MovableHolidaysKnown(year int) bool {
	_, ok := movableHolidays[year]
	return ok
}

// HolidaysIn returns every holiday of year ordered by date
func HolidaysIn(year int, loc *time.Location) []Holiday {
	if loc == nil {
		loc = time.UTC
	}

	seen := make(map[monthDay]struct{}, len(fixedHolidays)+4)
	result := make([]Holiday, 0, len(fixedHolidays)+4)

	for md, name := range fixedHolidays {
		seen[md] = struct{}{}
		result = append(result, Holiday{
			Date: time.Date(year, md.month, md.day, 0, 0, 0, 0, loc),
			Name: name,
		})
	}

	for md, name := range movableHolidays[year] {
		if _, dup := seen[md]; dup {
			continue
		}
		result = append(result, Holiday{
			Date:    time.Date(year, md.month, md.day, 0, 0, 0, 0, loc),
			Name:    name,
			Movable: true,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}
