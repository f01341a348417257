package status

import (
	"fmt"
	"time"

	"fogon/pkg/models"
)

// IntervalCheck describes how one configured interval compared against the probe time
type IntervalCheck struct {
	Open    string `json:"open"`
	Close   string `json:"close"`
	Matched bool   `json:"matched"`
	Error   string `json:"error,omitempty"`
}

// Diagnostic describes which day/intervals were checked and why the match
// succeeded or failed. Development-only payload, never used for control flow.
type Diagnostic struct {
	Day           string          `json:"day"`
	ProbeTime     string          `json:"probe_time"`
	DayConfigured bool            `json:"day_configured"`
	DayOpen       bool            `json:"day_open"`
	Intervals     []IntervalCheck `json:"intervals,omitempty"`
	Reason        string          `json:"reason"`
}

// Match reports whether now falls inside an open interval of the schedule.
// A nil schedule, a missing day entry, a day marked closed, or a day with no
// intervals all evaluate to closed: order acceptance is never enabled on
// missing configuration. Malformed interval times are skipped, not fatal.
func Match(schedule *models.WeeklySchedule, now time.Time) (bool, Diagnostic) {
	diag := Diagnostic{
		Day:       models.DayKey(now.Weekday()),
		ProbeTime: now.Format("15:04"),
	}

	if schedule == nil {
		diag.Reason = "no schedule configured"
		return false, diag
	}

	day := schedule.DayFor(now.Weekday())
	if day == nil {
		diag.Reason = "no entry for day"
		return false, diag
	}
	diag.DayConfigured = true
	diag.DayOpen = day.IsOpen

	if !day.IsOpen {
		diag.Reason = "day marked closed"
		return false, diag
	}

	if len(day.Intervals) == 0 {
		diag.Reason = "day open but no intervals configured"
		return false, diag
	}

	probe := now.Hour()*60 + now.Minute()
	matched := false
	for _, iv := range day.Intervals {
		check := IntervalCheck{Open: iv.Open, Close: iv.Close}

		open, err := models.ParseClock(iv.Open)
		if err != nil {
			check.Error = fmt.Sprintf("invalid open time %q", iv.Open)
			diag.Intervals = append(diag.Intervals, check)
			continue
		}
		close, err := models.ParseClock(iv.Close)
		if err != nil {
			check.Error = fmt.Sprintf("invalid close time %q", iv.Close)
			diag.Intervals = append(diag.Intervals, check)
			continue
		}

		// Close before open would mean crossing midnight; such intervals are
		// rejected at configuration time and never match here.
		if probe >= open && probe < close {
			check.Matched = true
			matched = true
		}
		diag.Intervals = append(diag.Intervals, check)
	}

	if matched {
		diag.Reason = "inside open interval"
	} else {
		diag.Reason = "outside all intervals"
	}
	return matched, diag
}
