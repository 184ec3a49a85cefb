package scheduling

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical", at(9, 0), at(9, 30), at(9, 0), at(9, 30), true},
		{"partial", at(9, 0), at(9, 30), at(9, 15), at(9, 45), true},
		{"contained", at(9, 0), at(10, 0), at(9, 15), at(9, 30), true},
		{"touching not crossing", at(9, 0), at(9, 30), at(9, 30), at(10, 0), false},
		{"disjoint", at(9, 0), at(9, 30), at(11, 0), at(11, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tc.name, got, tc.want)
			}
			// The predicate is symmetric under swapping the two ranges.
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps swapped(%v) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestOverlapsPatientScenario(t *testing.T) {
	// Candidate 09:00-09:30 against an existing 09:15-09:45 booking.
	if !Overlaps(at(9, 0), at(9, 30), at(9, 15), at(9, 45)) {
		t.Error("expected 09:00-09:30 to overlap 09:15-09:45")
	}
}
