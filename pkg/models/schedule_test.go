package models

import "testing"

func TestWeeklyScheduleValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule WeeklySchedule
		wantErr  bool
	}{
		{
			name: "valid split shift",
			schedule: WeeklySchedule{
				Timezone: "America/Mexico_City",
				Days: []DaySchedule{
					{Day: "monday", IsOpen: true, Intervals: []TimeInterval{
						{Open: "09:00", Close: "14:00"},
						{Open: "18:00", Close: "23:00"},
					}},
					{Day: "sunday", IsOpen: false},
				},
			},
		},
		{
			name: "unknown day",
			schedule: WeeklySchedule{
				Days: []DaySchedule{{Day: "funday", IsOpen: true}},
			},
			wantErr: true,
		},
		{
			name: "duplicate day",
			schedule: WeeklySchedule{
				Days: []DaySchedule{
					{Day: "monday", IsOpen: true},
					{Day: "monday", IsOpen: false},
				},
			},
			wantErr: true,
		},
		{
			name: "malformed open time",
			schedule: WeeklySchedule{
				Days: []DaySchedule{
					{Day: "monday", IsOpen: true, Intervals: []TimeInterval{{Open: "9am", Close: "14:00"}}},
				},
			},
			wantErr: true,
		},
		{
			name: "close before open",
			schedule: WeeklySchedule{
				Days: []DaySchedule{
					{Day: "friday", IsOpen: true, Intervals: []TimeInterval{{Open: "22:00", Close: "02:00"}}},
				},
			},
			wantErr: true,
		},
		{
			name: "overlapping intervals",
			schedule: WeeklySchedule{
				Days: []DaySchedule{
					{Day: "monday", IsOpen: true, Intervals: []TimeInterval{
						{Open: "09:00", Close: "14:00"},
						{Open: "13:00", Close: "18:00"},
					}},
				},
			},
			wantErr: true,
		},
		{
			name: "invalid timezone",
			schedule: WeeklySchedule{
				Timezone: "Mars/Olympus",
				Days:     []DaySchedule{{Day: "monday", IsOpen: true}},
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		err := test.schedule.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestParseClock(t *testing.T) {
	if v, err := ParseClock("13:59"); err != nil || v != 13*60+59 {
		t.Errorf("ParseClock(13:59) = %d, %v", v, err)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Error("ParseClock(25:00) should fail")
	}
	if _, err := ParseClock(""); err == nil {
		t.Error("ParseClock(empty) should fail")
	}
}
