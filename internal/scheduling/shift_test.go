package scheduling

import "testing"

func TestShiftMatchesClock(t *testing.T) {
	clock := func(s string) ClockTime {
		c, err := ParseClock(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return c
	}

	cases := []struct {
		shift Shift
		at    string
		want  bool
	}{
		{ShiftMorning, "00:00", true},
		{ShiftMorning, "11:59", true},
		{ShiftMorning, "12:00", false},
		{ShiftEvening, "12:00", true}, // noon belongs to Evening
		{ShiftEvening, "11:59", false},
		{ShiftEvening, "23:59", true},
	}
	for _, tc := range cases {
		if got := tc.shift.MatchesClock(clock(tc.at)); got != tc.want {
			t.Errorf("%s.MatchesClock(%s) = %v, want %v", tc.shift, tc.at, got, tc.want)
		}
	}
}

func TestShiftValid(t *testing.T) {
	if !ShiftMorning.Valid() || !ShiftEvening.Valid() {
		t.Error("expected known shifts to be valid")
	}
	if Shift("night").Valid() {
		t.Error("expected unknown shift to be invalid")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if AppointmentStatus("pending").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
