package scheduling

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"09:00", 9 * 60, false},
		{"00:00", 0, false},
		{"23:59", 23*60 + 59, false},
		{"12:30", 12*60 + 30, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"garbage", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClockString(t *testing.T) {
	c, _ := ParseClock("09:05")
	if c.String() != "09:05" {
		t.Errorf("String() = %q, want 09:05", c.String())
	}
}

func TestClockOn(t *testing.T) {
	day := time.Date(2025, 3, 10, 15, 42, 7, 0, time.UTC)
	c, _ := ParseClock("09:30")
	got := c.On(day)
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestClockOf(t *testing.T) {
	ts := time.Date(2025, 3, 10, 14, 45, 33, 0, time.UTC)
	if got := ClockOf(ts); got != ClockTime(14*60+45) {
		t.Errorf("ClockOf = %d, want %d", got, 14*60+45)
	}
}

func TestDateRangesOverlap(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC) }
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"nested", d(1), d(30), d(10), d(20), true},
		{"disjoint", d(1), d(5), d(6), d(10), false},
		{"shared boundary day", d(1), d(5), d(5), d(10), true},
		{"time of day ignored", d(1).Add(23 * time.Hour), d(5), d(5).Add(10 * time.Hour), d(10), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dateRangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("dateRangesOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}
