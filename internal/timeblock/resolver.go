package timeblock

import (
	"time"

	"github.com/username/tariff-blocks/internal/calendar"
	"go.uber.org/zap"
)

// FallbackBlockID is returned by BlockForHour when no period matches.
// It is also a regular block id of the low season weekend table.
const FallbackBlockID = 5

// CurrentBlock describes the period a moment falls into.
// End is normalized to 0-23; IsOvernight marks periods that cross midnight.
type CurrentBlock struct {
	ID          int  `json:"id" yaml:"id"`
	Start       int  `json:"start" yaml:"start"`
	End         int  `json:"end" yaml:"end"`
	IsOvernight bool `json:"isOvernight" yaml:"isOvernight"`
}

// Segment is one bar of a day timeline. Day is 1 for the part of an
// overnight period that runs up to midnight, 0 otherwise.
type Segment struct {
	ID    int `json:"id" yaml:"id"`
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
	Day   int `json:"day,omitempty" yaml:"day,omitempty"`
}

// Day is the classification and timeline of one date
type Day struct {
	Date     time.Time
	Season   Season
	Category DayCategory
	Segments []Segment
}

// Resolver answers block queries against a holiday calendar
type Resolver struct {
	cal      calendar.Calendar
	tableFor func(Season, DayCategory) Table
	logger   *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(cal calendar.Calendar, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		cal:      cal,
		tableFor: staticTable,
		logger:   logger,
	}
}

// Table returns a copy of the block table that applies on the date
func (r *Resolver) Table(date time.Time) Table {
	return r.table(date).Clone()
}

// Classify returns the season and day category of the date
func (r *Resolver) Classify(date time.Time) (Season, DayCategory) {
	return SeasonOf(date), ClassifyDayCategory(date, r.cal.Holidays(), r.cal.IsEasterMonday)
}

// Day classifies the date and flattens its table into timeline segments
func (r *Resolver) Day(date time.Time) Day {
	season, category := r.Classify(date)
	return Day{
		Date:     date,
		Season:   season,
		Category: category,
		Segments: r.GenerateTimeBlocks(date),
	}
}

// table returns the shared table of the date; callers must not modify it
func (r *Resolver) table(date time.Time) Table {
	table := selectTable(date, r.cal, r.tableFor)
	if len(table) == 0 {
		r.logger.Debug("No time block table for date",
			zap.Time("date", date))
	}
	return table
}

// CurrentTimeBlock returns the block covering the hour of date, or nil
func (r *Resolver) CurrentTimeBlock(date time.Time) *CurrentBlock {
	hour := date.Hour()

	for _, block := range r.table(date) {
		for _, period := range block.Periods {
			if !period.Contains(hour) {
				continue
			}

			end := period.End
			if period.IsOvernight() {
				end -= hoursPerDay
			}
			return &CurrentBlock{
				ID:          block.ID,
				Start:       period.Start,
				End:         end,
				IsOvernight: period.IsOvernight(),
			}
		}
	}

	r.logger.Debug("No time block matches hour",
		zap.Time("date", date),
		zap.Int("hour", hour))
	return nil
}

// LookupBlock returns the block id for hour on the date. The hour is not
// validated; out-of-range values are tested against the periods as they are.
func (r *Resolver) LookupBlock(date time.Time, hour int) (int, bool) {
	for _, block := range r.table(date) {
		for _, period := range block.Periods {
			if period.Contains(hour) {
				return block.ID, true
			}
		}
	}
	return 0, false
}

// BlockForHour is LookupBlock with FallbackBlockID standing in for no match
func (r *Resolver) BlockForHour(date time.Time, hour int) int {
	id, ok := r.LookupBlock(date, hour)
	if !ok {
		r.logger.Debug("No time block for hour, using fallback",
			zap.Time("date", date),
			zap.Int("hour", hour),
			zap.Int("fallback", FallbackBlockID))
		return FallbackBlockID
	}
	return id
}

// GenerateTimeBlocks flattens the day's table into timeline segments.
// Overnight periods become two segments: start..midnight tagged Day 1 and
// midnight..end untagged.
func (r *Resolver) GenerateTimeBlocks(date time.Time) []Segment {
	segments := make([]Segment, 0)

	for _, block := range r.table(date) {
		for _, period := range block.Periods {
			if period.IsOvernight() {
				segments = append(segments,
					Segment{ID: block.ID, Start: period.Start, End: 0, Day: 1},
					Segment{ID: block.ID, Start: 0, End: period.End - hoursPerDay},
				)
				continue
			}
			segments = append(segments, Segment{ID: block.ID, Start: period.Start, End: period.End})
		}
	}

	return segments
}

var defaultResolver = NewResolver(calendar.NewSloveniaCalendar(), nil)

// CurrentTimeBlock uses the built-in Slovenian calendar
func CurrentTimeBlock(date time.Time) *CurrentBlock {
	return defaultResolver.CurrentTimeBlock(date)
}

// BlockForHour uses the built-in Slovenian calendar
func BlockForHour(date time.Time, hour int) int {
	return defaultResolver.BlockForHour(date, hour)
}

// GenerateTimeBlocks uses the built-in Slovenian calendar
func GenerateTimeBlocks(date time.Time) []Segment {
	return defaultResolver.GenerateTimeBlocks(date)
}
