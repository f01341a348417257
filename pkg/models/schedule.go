package models

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// SettingKeyBusinessHours is the tenant setting key holding the weekly schedule
const SettingKeyBusinessHours = "business_hours"

// WeeklySchedule is the tenant-configured table of open intervals per day
type WeeklySchedule struct {
	Days     []DaySchedule `json:"days"`
	Timezone string        `json:"timezone"`
}

// DaySchedule holds the open intervals for one day of the week.
// Multiple intervals support split shifts (lunch/dinner).
type DaySchedule struct {
	Day       string         `json:"day"` // monday..sunday
	IsOpen    bool           `json:"is_open"`
	Intervals []TimeInterval `json:"intervals"`
}

// TimeInterval is one open/close pair in "15:04" wall-clock format
type TimeInterval struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

var dayKeys = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// DayKey returns the schedule day key for a weekday
func DayKey(weekday time.Weekday) string {
	days := map[time.Weekday]string{
		time.Monday:    "monday",
		time.Tuesday:   "tuesday",
		time.Wednesday: "wednesday",
		time.Thursday:  "thursday",
		time.Friday:    "friday",
		time.Saturday:  "saturday",
		time.Sunday:    "sunday",
	}
	return days[weekday]
}

// DayFor returns the entry for a weekday, or nil if none is configured
func (s *WeeklySchedule) DayFor(weekday time.Weekday) *DaySchedule {
	if s == nil {
		return nil
	}
	key := DayKey(weekday)
	for i := range s.Days {
		if s.Days[i].Day == key {
			return &s.Days[i]
		}
	}
	return nil
}

// ParseClock parses a "15:04" time-of-day into minutes since midnight
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate rejects malformed schedules at the boundary: unknown day names,
// duplicate days, unparseable times, close not after open, and overlapping
// intervals within a day. Overnight intervals (close before open) are not
// accepted; a day crossing midnight must be modeled on both day entries.
func (s *WeeklySchedule) Validate() error {
	if s == nil {
		return errors.New("schedule is required")
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q", s.Timezone)
		}
	}

	seen := make(map[string]bool)
	for _, day := range s.Days {
		if _, ok := dayKeys[day.Day]; !ok {
			return fmt.Errorf("unknown day %q", day.Day)
		}
		if seen[day.Day] {
			return fmt.Errorf("duplicate entry for %s", day.Day)
		}
		seen[day.Day] = true

		type span struct{ open, close int }
		spans := make([]span, 0, len(day.Intervals))
		for _, iv := range day.Intervals {
			open, err := ParseClock(iv.Open)
			if err != nil {
				return fmt.Errorf("%s: invalid open time %q", day.Day, iv.Open)
			}
			close, err := ParseClock(iv.Close)
			if err != nil {
				return fmt.Errorf("%s: invalid close time %q", day.Day, iv.Close)
			}
			if close <= open {
				return fmt.Errorf("%s: close %q must be after open %q", day.Day, iv.Close, iv.Open)
			}
			spans = append(spans, span{open, close})
		}

		sort.Slice(spans, func(i, j int) bool { return spans[i].open < spans[j].open })
		for i := 1; i < len(spans); i++ {
			if spans[i].open < spans[i-1].close {
				return fmt.Errorf("%s: overlapping intervals", day.Day)
			}
		}
	}

	return nil
}
