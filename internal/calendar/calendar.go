package calendar

import "time"

// Holiday is an annually recurring non-working day
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
}

// Matches reports whether the holiday falls on the calendar date of t
func (h Holiday) Matches(t time.Time) bool {
	return h.Month == t.Month() && h.Day == t.Day()
}

// Calendar supplies the holiday data used to classify days
type Calendar interface {
	// Holidays returns the fixed annual holidays
	Holidays() []Holiday

	// IsEasterMonday reports whether the date is Easter Monday
	IsEasterMonday(date time.Time) bool
}
