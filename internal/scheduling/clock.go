// Package scheduling implements the appointment availability computations:
// slot generation against doctor working hours, clinic operating hours and
// shift assignments, booking conflict detection, assignment validation and
// the clinic-wide daily schedule report. Everything in this package is pure:
// callers load the records, the package decides.
package scheduling

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision, stored as minutes since
// midnight. Doctor working windows and clinic operating hours are clock
// times, not absolute timestamps.
type ClockTime int

// ParseClock parses "HH:MM" (24-hour) into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock time %q: out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

// ClockOf returns the clock time of an absolute timestamp.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

// Hour returns the hour component (0-23).
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component (0-59).
func (c ClockTime) Minute() int { return int(c) % 60 }

// Add returns the clock time shifted forward by the given minutes.
func (c ClockTime) Add(minutes int) ClockTime { return c + ClockTime(minutes) }

// On anchors the clock time to the calendar day of date, in date's location.
func (c ClockTime) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location())
}

// String formats the clock time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalJSON renders the clock time as its "HH:MM" string form.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the "HH:MM" string form.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// dateOnly strips the time-of-day component.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDate reports whether two timestamps fall on the same calendar day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dateWithin reports whether day falls inside [start, end], comparing
// calendar days only. Both bounds are inclusive.
func dateWithin(day, start, end time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(start)) && !d.After(dateOnly(end))
}

// dateRangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd]
// intersect, comparing calendar days with inclusive bounds.
func dateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !dateOnly(aStart).After(dateOnly(bEnd)) && !dateOnly(bStart).After(dateOnly(aEnd))
}
