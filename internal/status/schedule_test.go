package status

import (
	"testing"
	"time"

	"fogon/pkg/models"
)

// 2025-06-02 is a Monday
func monday(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func tuesday(hour, min int) time.Time {
	return time.Date(2025, 6, 3, hour, min, 0, 0, time.UTC)
}

func TestMatchNoScheduleIsClosed(t *testing.T) {
	open, diag := Match(nil, monday(12, 0))
	if open {
		t.Error("nil schedule must evaluate to closed")
	}
	if diag.Reason != "no schedule configured" {
		t.Errorf("unexpected reason %q", diag.Reason)
	}

	open, _ = Match(&models.WeeklySchedule{}, monday(12, 0))
	if open {
		t.Error("schedule without day entries must evaluate to closed")
	}
}

func TestMatchSplitShift(t *testing.T) {
	schedule := &models.WeeklySchedule{
		Days: []models.DaySchedule{
			{
				Day:    "monday",
				IsOpen: true,
				Intervals: []models.TimeInterval{
					{Open: "09:00", Close: "14:00"},
					{Open: "18:00", Close: "23:00"},
				},
			},
		},
	}

	tests := []struct {
		probe    time.Time
		expected bool
	}{
		{monday(13, 59), true},
		{monday(15, 0), false},
		{monday(22, 59), true},
		{monday(8, 59), false},
		{monday(9, 0), true},
		{monday(14, 0), false},
		{monday(23, 0), false},
	}

	for _, test := range tests {
		open, diag := Match(schedule, test.probe)
		if open != test.expected {
			t.Errorf("Match at %s = %v, expected %v (reason: %s)",
				test.probe.Format("15:04"), open, test.expected, diag.Reason)
		}
	}
}

func TestMatchDayBoundaryIsolation(t *testing.T) {
	schedule := &models.WeeklySchedule{
		Days: []models.DaySchedule{
			{
				Day:       "monday",
				IsOpen:    true,
				Intervals: []models.TimeInterval{{Open: "08:00", Close: "22:00"}},
			},
			{
				Day:    "tuesday",
				IsOpen: false,
			},
		},
	}

	if open, _ := Match(schedule, monday(12, 0)); !open {
		t.Error("expected open on Monday at 12:00")
	}
	if open, diag := Match(schedule, tuesday(12, 0)); open {
		t.Errorf("Monday's entry must not affect Tuesday (reason: %s)", diag.Reason)
	}
}

func TestMatchDayOpenWithoutIntervals(t *testing.T) {
	schedule := &models.WeeklySchedule{
		Days: []models.DaySchedule{
			{Day: "monday", IsOpen: true},
		},
	}

	open, diag := Match(schedule, monday(12, 0))
	if open {
		t.Error("day with no intervals must evaluate to closed")
	}
	if diag.Reason != "day open but no intervals configured" {
		t.Errorf("unexpected reason %q", diag.Reason)
	}
}

func TestMatchMalformedIntervalIsSkipped(t *testing.T) {
	schedule := &models.WeeklySchedule{
		Days: []models.DaySchedule{
			{
				Day:    "monday",
				IsOpen: true,
				Intervals: []models.TimeInterval{
					{Open: "garbage", Close: "14:00"},
					{Open: "10:00", Close: "18:00"},
				},
			},
		},
	}

	open, diag := Match(schedule, monday(12, 0))
	if !open {
		t.Error("valid interval must still match when another interval is malformed")
	}
	if len(diag.Intervals) != 2 {
		t.Fatalf("expected 2 interval checks, got %d", len(diag.Intervals))
	}
	if diag.Intervals[0].Error == "" {
		t.Error("malformed interval must carry an error in the diagnostic")
	}
	if !diag.Intervals[1].Matched {
		t.Error("second interval should have matched")
	}
}

func TestMatchMissingDayEntry(t *testing.T) {
	schedule := &models.WeeklySchedule{
		Days: []models.DaySchedule{
			{
				Day:       "monday",
				IsOpen:    true,
				Intervals: []models.TimeInterval{{Open: "08:00", Close: "22:00"}},
			},
		},
	}

	open, diag := Match(schedule, tuesday(12, 0))
	if open {
		t.Error("day without an entry must evaluate to closed")
	}
	if diag.DayConfigured {
		t.Error("diagnostic should report the day as not configured")
	}
}
