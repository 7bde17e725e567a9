package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/tariff-blocks/internal/timeblock"
)

// Renderer draws block data as terminal text
type Renderer struct {
	color bool
}

// NewRenderer creates a new Renderer; color switches lipgloss styling on
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) style(s string, st lipgloss.Style) string {
	if !r.color {
		return s
	}
	return st.Render(s)
}

// HourBlocks maps every hour of the day to its block id using the
// timeline segments. Hours without a segment stay 0.
func HourBlocks(segments []timeblock.Segment) [24]int {
	var hours [24]int
	for _, seg := range segments {
		end := seg.End
		if seg.Day == 1 && end == 0 {
			end = 24
		}
		for h := seg.Start; h < end && h < 24; h++ {
			hours[h] = seg.ID
		}
	}
	return hours
}

// Current formats the current block as a single line
func (r *Renderer) Current(date time.Time, block *timeblock.CurrentBlock) string {
	if block == nil {
		return r.style(fmt.Sprintf("%s: no time block", date.Format("2006-01-02 15:04")), mutedStyle)
	}

	overnight := ""
	if block.IsOvernight {
		overnight = " (overnight)"
	}

	return fmt.Sprintf("%s  %s  %02d:00-%02d:00%s",
		r.style(date.Format("2006-01-02 15:04"), labelStyle),
		r.style(fmt.Sprintf(" Blok %d ", block.ID), blockStyle(block.ID)),
		block.Start, block.End, overnight)
}

// Timeline draws one cell per hour with the block id, an hour axis below,
// and a marker under currentHour when it is in 0-23.
func (r *Renderer) Timeline(day timeblock.Day, currentHour int) string {
	var lines []string

	lines = append(lines, r.style(
		fmt.Sprintf("Časovni bloki %s (%s)", day.Date.Format("2006-01-02"), day.Date.Weekday()),
		titleStyle))
	lines = append(lines, r.style(
		fmt.Sprintf("%s season, %s", day.Season, day.Category),
		mutedStyle))

	segments := day.Segments

	if len(segments) == 0 {
		lines = append(lines, r.style("No time blocks for this date", mutedStyle))
		return strings.Join(lines, "\n")
	}

	hours := HourBlocks(segments)

	var cells, axis, marker strings.Builder
	for h, id := range hours {
		label := " " + strconv.Itoa(id) + " "
		cells.WriteString(r.style(label, blockStyle(id)))
		axis.WriteString(fmt.Sprintf("%-3d", h))
		if h == currentHour {
			marker.WriteString(r.style(" ^ ", currentMarkerStyle))
		} else {
			marker.WriteString("   ")
		}
	}

	lines = append(lines, cells.String(), r.style(axis.String(), mutedStyle))
	if currentHour >= 0 && currentHour < 24 {
		lines = append(lines, strings.TrimRight(marker.String(), " "))
	}

	lines = append(lines, "", r.style("Periods:", labelStyle))
	for _, seg := range segments {
		end := fmt.Sprintf("%02d:00", seg.End)
		if seg.Day == 1 {
			end = "24:00"
		}
		lines = append(lines, fmt.Sprintf("  %s  %02d:00-%s",
			r.style(fmt.Sprintf(" %d ", seg.ID), blockStyle(seg.ID)),
			seg.Start, end))
	}

	return strings.Join(lines, "\n")
}
