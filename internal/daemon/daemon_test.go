package daemon

import (
	"testing"
	"time"

	"github.com/username/tariff-blocks/internal/calendar"
	"github.com/username/tariff-blocks/internal/timeblock"
	"go.uber.org/zap"
)

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	resolver := timeblock.NewResolver(calendar.NewSloveniaCalendar(), logger)
	return NewDaemon(resolver, time.UTC, time.Minute, false, logger)
}

func TestDaemon_Check(t *testing.T) {
	d := newTestDaemon(t)

	var changes []Transition
	d.OnChange(func(tr Transition) {
		changes = append(changes, tr)
	})

	// Tuesday in January, high season workday
	steps := []struct {
		at          time.Time
		wantChanged bool
		wantID      int
	}{
		{time.Date(2025, 1, 14, 5, 30, 0, 0, time.UTC), true, 3},
		{time.Date(2025, 1, 14, 5, 59, 0, 0, time.UTC), false, 3},
		{time.Date(2025, 1, 14, 6, 0, 0, 0, time.UTC), true, 2},
		{time.Date(2025, 1, 14, 6, 45, 0, 0, time.UTC), false, 2},
		{time.Date(2025, 1, 14, 7, 0, 0, 0, time.UTC), true, 1},
	}

	for _, step := range steps {
		tr, changed := d.Check(step.at)
		if changed != step.wantChanged {
			t.Errorf("Check(%s) changed = %v, want %v", step.at.Format("15:04"), changed, step.wantChanged)
		}
		if changed && tr.To.ID != step.wantID {
			t.Errorf("Check(%s) to = %d, want %d", step.at.Format("15:04"), tr.To.ID, step.wantID)
		}
	}

	if len(changes) != 3 {
		t.Fatalf("OnChange called %d times, want 3", len(changes))
	}
	if changes[0].From != nil {
		t.Errorf("first transition From = %+v, want nil", changes[0].From)
	}
	if changes[1].From.ID != 3 || changes[1].To.ID != 2 {
		t.Errorf("second transition = %d -> %d, want 3 -> 2", changes[1].From.ID, changes[1].To.ID)
	}
}

func TestDaemon_CheckMidnightTableSwitch(t *testing.T) {
	d := newTestDaemon(t)

	// Friday night stays in the workday overnight block until midnight,
	// then the weekend table applies.
	d.Check(time.Date(2025, 1, 17, 23, 0, 0, 0, time.UTC))
	tr, changed := d.Check(time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC))

	if !changed {
		t.Fatal("Check() at midnight changed = false, want true")
	}
	if tr.From.ID != 3 || tr.To.ID != 4 {
		t.Errorf("transition = %d -> %d, want 3 -> 4", tr.From.ID, tr.To.ID)
	}
}

func TestDaemon_NextChange(t *testing.T) {
	d := newTestDaemon(t)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "morning peak ends at 14",
			now:  time.Date(2025, 1, 14, 9, 15, 0, 0, time.UTC),
			want: time.Date(2025, 1, 14, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "overnight ends at 6",
			now:  time.Date(2025, 1, 14, 23, 10, 0, 0, time.UTC),
			want: time.Date(2025, 1, 15, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "single hour block",
			now:  time.Date(2025, 1, 14, 6, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 14, 7, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.NextChange(tt.now); !got.Equal(tt.want) {
				t.Errorf("NextChange(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDaemon_GetStatus(t *testing.T) {
	d := newTestDaemon(t)

	status := d.GetStatus()
	if _, ok := status["block"]; ok {
		t.Error("status has block before first check")
	}

	d.Check(time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC))
	status = d.GetStatus()

	block, ok := status["block"].(map[string]interface{})
	if !ok {
		t.Fatalf("status block missing: %v", status)
	}
	if block["id"] != 2 {
		t.Errorf("block id = %v, want 2", block["id"])
	}
	if status["running"] != true {
		t.Errorf("running = %v, want true", status["running"])
	}

	d.Stop()
	if d.GetStatus()["running"] != false {
		t.Error("running = true after Stop")
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(nil); got != "No time block" {
		t.Errorf("Describe(nil) = %q", got)
	}
	got := Describe(&timeblock.CurrentBlock{ID: 3, Start: 22, End: 6, IsOvernight: true})
	if got != "Blok 3 (22:00-06:00)" {
		t.Errorf("Describe() = %q", got)
	}
}
