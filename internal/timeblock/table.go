package timeblock

import (
	"fmt"
	"time"

	"github.com/username/tariff-blocks/internal/calendar"
)

const (
	// hoursPerDay is the boundary past which period hours belong to the next day
	hoursPerDay = 24
	// maxPeriodEnd bounds overnight periods to 06:00 of the next day
	maxPeriodEnd = 30
)

// Period is a half-open hour interval [Start, End).
// End values above 24 continue into the following day, so 30 means 06:00.
type Period struct {
	Start int
	End   int
}

// IsOvernight reports whether the period crosses midnight
func (p Period) IsOvernight() bool {
	return p.End > hoursPerDay
}

// Contains reports whether a plain 0-23 hour falls inside the period
func (p Period) Contains(hour int) bool {
	if p.IsOvernight() {
		return hour >= p.Start || hour < p.End-hoursPerDay
	}
	return hour >= p.Start && hour < p.End
}

// TimeBlock is a numbered tariff tier and the hours it covers
type TimeBlock struct {
	ID      int
	Periods []Period
}

// Table is the ordered list of blocks for one season and day category
type Table []TimeBlock

type tableKey struct {
	season   Season
	category DayCategory
}

var tables = map[tableKey]Table{
	{HighSeason, Workday}: {
		{ID: 1, Periods: []Period{{7, 14}, {16, 20}}},
		{ID: 2, Periods: []Period{{6, 7}, {14, 16}, {20, 22}}},
		{ID: 3, Periods: []Period{{22, 30}}},
	},
	{HighSeason, WeekendOrHolyday}: {
		{ID: 2, Periods: []Period{{7, 14}, {16, 20}}},
		{ID: 3, Periods: []Period{{6, 7}, {14, 16}, {20, 22}}},
		{ID: 4, Periods: []Period{{22, 30}}},
	},
	{LowSeason, Workday}: {
		{ID: 2, Periods: []Period{{7, 14}, {16, 20}}},
		{ID: 3, Periods: []Period{{6, 7}, {14, 16}, {20, 22}}},
		{ID: 4, Periods: []Period{{22, 30}}},
	},
	{LowSeason, WeekendOrHolyday}: {
		{ID: 3, Periods: []Period{{7, 14}, {16, 20}}},
		{ID: 4, Periods: []Period{{6, 7}, {14, 16}, {20, 22}}},
		{ID: 5, Periods: []Period{{22, 30}}},
	},
}

// TableFor returns a copy of the static table for a season and day category.
// Neither season has no table and yields nil.
func TableFor(season Season, category DayCategory) Table {
	return staticTable(season, category).Clone()
}

func staticTable(season Season, category DayCategory) Table {
	return tables[tableKey{season, category}]
}

// SelectTable classifies the date and returns a copy of its table
func SelectTable(date time.Time, cal calendar.Calendar) Table {
	return selectTable(date, cal, staticTable).Clone()
}

func selectTable(date time.Time, cal calendar.Calendar, tableFor func(Season, DayCategory) Table) Table {
	season := SeasonOf(date)
	if season == Neither {
		return nil
	}
	return tableFor(season, ClassifyDayCategory(date, cal.Holidays(), cal.IsEasterMonday))
}

// Clone returns a deep copy of the table, periods included
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	clone := make(Table, len(t))
	for i, block := range t {
		clone[i] = TimeBlock{
			ID:      block.ID,
			Periods: append([]Period(nil), block.Periods...),
		}
	}
	return clone
}

// Validate checks that the periods of the table cover every hour of the day
// exactly once
func (t Table) Validate() error {
	var owner [hoursPerDay]int

	for _, block := range t {
		for _, period := range block.Periods {
			if period.Start < 0 || period.Start >= hoursPerDay || period.End <= period.Start || period.End > maxPeriodEnd {
				return fmt.Errorf("block %d: invalid period [%d,%d)", block.ID, period.Start, period.End)
			}
			for h := period.Start; h < period.End; h++ {
				hour := h % hoursPerDay
				if owner[hour] != 0 {
					return fmt.Errorf("hour %d covered by blocks %d and %d", hour, owner[hour], block.ID)
				}
				owner[hour] = block.ID
			}
		}
	}

	for hour, id := range owner {
		if id == 0 {
			return fmt.Errorf("hour %d is not covered", hour)
		}
	}
	return nil
}

// ValidateTables checks every static table
func ValidateTables() error {
	for key, table := range tables {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("%s/%s table: %w", key.season, key.category, err)
		}
	}
	return nil
}
