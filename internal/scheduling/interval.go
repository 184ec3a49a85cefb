package scheduling

import "time"

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. A range ending exactly when another begins does
// not overlap. Every time-range comparison in this package goes through this
// predicate so the edge-case behavior cannot drift between components.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
