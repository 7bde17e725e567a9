package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestSloveniaCalendar_IsEasterMonday(t *testing.T) {
	cal := NewSloveniaCalendar()

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"2016 in March", d(2016, time.March, 28), true},
		{"2024 in April", d(2024, time.April, 1), true},
		{"2025", d(2025, time.April, 21), true},
		{"2027 in March", d(2027, time.March, 29), true},
		{"Easter Sunday 2025", d(2025, time.April, 20), false},
		{"Tuesday after 2025", d(2025, time.April, 22), false},
		{"Same day other year", d(2026, time.April, 21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.IsEasterMonday(tt.date); got != tt.want {
				t.Errorf("IsEasterMonday(%v) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestSloveniaCalendar_IsEasterMonday_TimeOfDayIgnored(t *testing.T) {
	cet := time.FixedZone("CEST", 2*60*60)
	late := time.Date(2025, time.April, 21, 23, 59, 0, 0, cet)
	if !NewSloveniaCalendar().IsEasterMonday(late) {
		t.Error("IsEasterMonday should ignore time-of-day")
	}
}

func TestSloveniaHolidays_Valid(t *testing.T) {
	if len(SloveniaHolidays) != 12 {
		t.Errorf("len(SloveniaHolidays) = %d, want 12", len(SloveniaHolidays))
	}

	for _, h := range SloveniaHolidays {
		date := time.Date(2024, h.Month, h.Day, 0, 0, 0, 0, time.UTC)
		if date.Month() != h.Month || date.Day() != h.Day {
			t.Errorf("holiday %s has invalid date %s-%d", h.Name, h.Month, h.Day)
		}
	}
}

func writeHolidayFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holidays.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write holiday file: %v", err)
	}
	return path
}

func TestFileCalendar_Load(t *testing.T) {
	path := writeHolidayFile(t, `# extra non-working days
12-24 Božični večer

12-31 Silvestrovo
13-01 invalid month
not-a-date
`)

	fc := NewFileCalendar(path, zap.NewNop())
	if err := fc.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	holidays := fc.Holidays()
	if len(holidays) != 2 {
		t.Fatalf("len(Holidays()) = %d, want 2", len(holidays))
	}

	want := Holiday{Month: time.December, Day: 24, Name: "Božični večer"}
	if holidays[0] != want {
		t.Errorf("Holidays()[0] = %+v, want %+v", holidays[0], want)
	}
	if holidays[1].Month != time.December || holidays[1].Day != 31 {
		t.Errorf("Holidays()[1] = %+v, want December 31", holidays[1])
	}

	if fc.IsEasterMonday(d(2025, time.April, 21)) {
		t.Error("FileCalendar must not report Easter Monday")
	}
}

func TestFileCalendar_LoadMissingFile(t *testing.T) {
	fc := NewFileCalendar(filepath.Join(t.TempDir(), "absent.txt"), zap.NewNop())
	if err := fc.Load(); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestCompositeCalendar(t *testing.T) {
	path := writeHolidayFile(t, "12-24 Božični večer\n01-01 duplicate\n")

	logger, _ := zap.NewDevelopment()
	fc := NewFileCalendar(path, logger)
	cc := NewCompositeCalendar(logger, NewSloveniaCalendar(), fc)

	if got := len(cc.Holidays()); got != len(SloveniaHolidays) {
		t.Errorf("before LoadExtras: len(Holidays()) = %d, want %d", got, len(SloveniaHolidays))
	}

	if err := cc.LoadExtras(); err != nil {
		t.Fatalf("LoadExtras() error = %v", err)
	}

	if got := len(cc.Holidays()); got != len(SloveniaHolidays)+1 {
		t.Errorf("after LoadExtras: len(Holidays()) = %d, want %d", got, len(SloveniaHolidays)+1)
	}

	var christmasEve bool
	for _, h := range cc.Holidays() {
		if h.Matches(d(2025, time.December, 24)) {
			christmasEve = true
		}
	}
	if !christmasEve {
		t.Error("Holidays() missing 12-24 after LoadExtras")
	}

	if !cc.IsEasterMonday(d(2025, time.April, 21)) {
		t.Error("IsEasterMonday(2025-04-21) = false, want true")
	}
}

func TestCompositeCalendar_LoadExtrasError(t *testing.T) {
	fc := NewFileCalendar(filepath.Join(t.TempDir(), "absent.txt"), zap.NewNop())
	cc := NewCompositeCalendar(zap.NewNop(), NewSloveniaCalendar(), fc)

	if err := cc.LoadExtras(); err == nil {
		t.Error("LoadExtras() expected error, got nil")
	}
}
