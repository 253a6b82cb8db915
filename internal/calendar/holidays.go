package calendar

import "time"

type monthDay struct {
	month time.Month
	day   int
}

// Movable holiday names
const (
	HolyThursday = "Jueves Santo"
	GoodFriday   = "Viernes Santo"
	Carnival     = "Carnaval"
)

// fixedHolidays national holidays that fall on the same day every year
var fixedHolidays = map[monthDay]string{
	{time.January, 1}:   "Año Nuevo",
	{time.February, 24}: "Día de la Bandera",
	{time.March, 24}:    "Día Nacional de la Memoria por la Verdad y la Justicia",
	{time.April, 2}:     "Día del Veterano y de los Caídos en la Guerra de Malvinas",
	{time.May, 1}:       "Día del Trabajador",
	{time.May, 25}:      "Día de la Revolución de Mayo",
	{time.June, 20}:     "Día de la Bandera Nacional",
	{time.July, 9}:      "Día de la Independencia",
	{time.August, 17}:   "Paso a la Inmortalidad del General José de San Martín",
	{time.October, 12}:  "Día del Respeto a la Diversidad Cultural",
	{time.November, 20}: "Día de la Soberanía Nacional",
	{time.December, 8}:  "Inmaculada Concepción de María",
	{time.December, 25}: "Navidad",
}

// movableHolidays precomputed Holy Week and Carnival dates per year
// Years missing here have no movable holidays
var movableHolidays = map[int]map[monthDay]string{
	2024: {
		{time.March, 28}:    HolyThursday,
		{time.March, 29}:    GoodFriday,
		{time.February, 12}: Carnival,
		{time.February, 13}: Carnival,
	},
	2025: {
		{time.April, 17}: HolyThursday,
		{time.April, 18}: GoodFriday,
		{time.March, 3}:  Carnival,
		{time.March, 4}:  Carnival,
	},
	2026: {
		{time.April, 2}:     HolyThursday,
		{time.April, 3}:     GoodFriday,
		{time.February, 16}: Carnival,
		{time.February, 17}: Carnival,
	},
	2027: {
		{time.March, 25}:   HolyThursday,
		{time.March, 26}:   GoodFriday,
		{time.February, 8}: Carnival,
		{time.February, 9}: Carnival,
	},
}
