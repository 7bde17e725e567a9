package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar as the union of several sources.
// A date is a holiday if any source lists it.
type CompositeCalendar struct {
	sources  []Calendar
	holidays []Holiday
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(logger *zap.Logger, sources ...Calendar) *CompositeCalendar {
	cc := &CompositeCalendar{
		sources: sources,
		logger:  logger,
	}
	cc.merge()
	return cc
}

// Holidays returns the merged holiday list without duplicates
func (cc *CompositeCalendar) Holidays() []Holiday {
	return cc.holidays
}

// IsEasterMonday reports true if any source does
func (cc *CompositeCalendar) IsEasterMonday(date time.Time) bool {
	for _, src := range cc.sources {
		if src.IsEasterMonday(date) {
			return true
		}
	}
	return false
}

// LoadExtras loads every file-backed source and rebuilds the merged list
func (cc *CompositeCalendar) LoadExtras() error {
	for _, src := range cc.sources {
		fc, ok := src.(*FileCalendar)
		if !ok {
			continue
		}
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load extra holidays: %w", err)
		}
	}

	cc.merge()
	cc.logger.Info("Extra holidays loaded successfully",
		zap.Int("holidays", len(cc.holidays)))
	return nil
}

func (cc *CompositeCalendar) merge() {
	type key struct {
		month time.Month
		day   int
	}

	seen := make(map[key]bool)
	merged := make([]Holiday, 0)
	for _, src := range cc.sources {
		for _, h := range src.Holidays() {
			k := key{h.Month, h.Day}
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, h)
		}
	}
	cc.holidays = merged
}
