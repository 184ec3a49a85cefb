package scheduling

import "time"

// Shift is the coarse AM/PM partition of a working day. It is an hour-of-day
// boundary test, not a configurable range: Morning covers hours before 12,
// Evening covers 12:00 onward, so noon exactly belongs to Evening.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

// Valid reports whether s is a known shift.
func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

// Matches reports whether the given timestamp's clock time falls in the shift.
func (s Shift) Matches(t time.Time) bool {
	return s.MatchesClock(ClockOf(t))
}

// MatchesClock reports whether the given clock time falls in the shift.
func (s Shift) MatchesClock(c ClockTime) bool {
	switch s {
	case ShiftMorning:
		return c.Hour() < 12
	case ShiftEvening:
		return c.Hour() >= 12
	}
	return false
}
