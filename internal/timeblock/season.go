package timeblock

import (
	"time"

	"github.com/username/tariff-blocks/internal/calendar"
	"github.com/username/tariff-blocks/pkg/dateutil"
)

// Season is the tariff season of a date
type Season int

const (
	Neither Season = iota
	HighSeason
	LowSeason
)

func (s Season) String() string {
	switch s {
	case HighSeason:
		return "high"
	case LowSeason:
		return "low"
	default:
		return "neither"
	}
}

// seasonRange is an inclusive month range; start > end wraps over the new year
type seasonRange struct {
	start time.Month
	end   time.Month
}

var (
	highSeason = seasonRange{start: time.November, end: time.February}
	lowSeason  = seasonRange{start: time.March, end: time.October}
)

// IsHighSeason reports whether the date falls in November..February
func IsHighSeason(date time.Time) bool {
	month := date.Month()
	return month >= highSeason.start || month <= highSeason.end
}

// IsLowSeason reports whether the date falls in March..October
func IsLowSeason(date time.Time) bool {
	month := date.Month()
	return month >= lowSeason.start && month <= lowSeason.end
}

// SeasonOf tests the high season first, then the low season.
// Neither is returned only if both predicates fail.
func SeasonOf(date time.Time) Season {
	if IsHighSeason(date) {
		return HighSeason
	}
	if IsLowSeason(date) {
		return LowSeason
	}
	return Neither
}

// DayCategory separates workdays from weekends and holidays
type DayCategory int

const (
	Workday DayCategory = iota + 1
	WeekendOrHolyday
)

func (c DayCategory) String() string {
	if c == WeekendOrHolyday {
		return "weekend-or-holiday"
	}
	return "workday"
}

// ClassifyDayCategory returns WeekendOrHolyday for Saturdays, Sundays, listed
// holidays and Easter Monday. The Easter Monday predicate is only consulted
// for dates in March.
func ClassifyDayCategory(date time.Time, holidays []calendar.Holiday, isEasterMonday func(time.Time) bool) DayCategory {
	if dateutil.IsWeekend(date) {
		return WeekendOrHolyday
	}
	for _, h := range holidays {
		if h.Matches(date) {
			return WeekendOrHolyday
		}
	}
	if date.Month() == time.March && isEasterMonday != nil && isEasterMonday(date) {
		return WeekendOrHolyday
	}
	return Workday
}
