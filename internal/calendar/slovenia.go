package calendar

import (
	"time"

	"github.com/rickar/cal/v2/aa"
)

// SloveniaHolidays lists the Slovenian public holidays with a fixed date.
// Easter Sunday and Whit Sunday always fall on a Sunday and are not listed.
var SloveniaHolidays = []Holiday{
	{Month: time.January, Day: 1, Name: "Novo leto"},
	{Month: time.January, Day: 2, Name: "Novo leto"},
	{Month: time.February, Day: 8, Name: "Prešernov dan"},
	{Month: time.April, Day: 27, Name: "Dan upora proti okupatorju"},
	{Month: time.May, Day: 1, Name: "Praznik dela"},
	{Month: time.May, Day: 2, Name: "Praznik dela"},
	{Month: time.June, Day: 25, Name: "Dan državnosti"},
	{Month: time.August, Day: 15, Name: "Marijino vnebovzetje"},
	{Month: time.October, Day: 31, Name: "Dan reformacije"},
	{Month: time.November, Day: 1, Name: "Dan spomina na mrtve"},
	{Month: time.December, Day: 25, Name: "Božič"},
	{Month: time.December, Day: 26, Name: "Dan samostojnosti in enotnosti"},
}

// SloveniaCalendar implements Calendar with the built-in Slovenian holidays
type SloveniaCalendar struct{}

// NewSloveniaCalendar creates a new SloveniaCalendar
func NewSloveniaCalendar() *SloveniaCalendar {
	return &SloveniaCalendar{}
}

// Holidays returns the fixed Slovenian holidays
func (SloveniaCalendar) Holidays() []Holiday {
	return SloveniaHolidays
}

// IsEasterMonday checks the date against Easter Monday of its year
func (SloveniaCalendar) IsEasterMonday(date time.Time) bool {
	actual, _ := aa.EasterMonday.Calc(date.Year())
	return actual.Month() == date.Month() && actual.Day() == date.Day()
}
