package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateAssignment(t *testing.T) {
	docID := uuid.New()
	clinicA := uuid.New()
	clinicB := uuid.New()
	today := date(2025, 1, 1)

	existing := []Assignment{{
		DoctorID:  docID,
		ClinicID:  clinicA,
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 6, 30),
		Shift:     ShiftMorning,
	}}

	cases := []struct {
		name      string
		candidate Assignment
		wantErr   error
	}{
		{
			"empty date range",
			Assignment{DoctorID: docID, ClinicID: clinicB, StartDate: date(2025, 2, 1), EndDate: date(2025, 2, 1), Shift: ShiftEvening},
			ErrInvalidDateRange,
		},
		{
			"inverted date range",
			Assignment{DoctorID: docID, ClinicID: clinicB, StartDate: date(2025, 3, 1), EndDate: date(2025, 2, 1), Shift: ShiftEvening},
			ErrInvalidDateRange,
		},
		{
			"retroactive start",
			Assignment{DoctorID: docID, ClinicID: clinicB, StartDate: date(2024, 12, 1), EndDate: date(2025, 2, 1), Shift: ShiftEvening},
			ErrStartDateInPast,
		},
		{
			"same clinic overlapping dates",
			Assignment{DoctorID: docID, ClinicID: clinicA, StartDate: date(2025, 5, 1), EndDate: date(2025, 8, 1), Shift: ShiftEvening},
			ErrClinicOverlap,
		},
		{
			"same shift at another clinic",
			Assignment{DoctorID: docID, ClinicID: clinicB, StartDate: date(2025, 3, 1), EndDate: date(2025, 4, 1), Shift: ShiftMorning},
			ErrShiftOverlap,
		},
		{
			"other shift at another clinic",
			Assignment{DoctorID: docID, ClinicID: clinicB, StartDate: date(2025, 3, 1), EndDate: date(2025, 4, 1), Shift: ShiftEvening},
			nil,
		},
		{
			"same clinic after existing range ends",
			Assignment{DoctorID: docID, ClinicID: clinicA, StartDate: date(2025, 7, 1), EndDate: date(2025, 12, 1), Shift: ShiftMorning},
			nil,
		},
		{
			"other doctor unaffected",
			Assignment{DoctorID: uuid.New(), ClinicID: clinicA, StartDate: date(2025, 3, 1), EndDate: date(2025, 4, 1), Shift: ShiftMorning},
			nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAssignment(tc.candidate, today, existing)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateAssignment = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateAssignment_CheckOrder(t *testing.T) {
	// A candidate that is both inverted and overlapping must fail on the
	// range check first: validation errors precede conflict checks.
	docID := uuid.New()
	clinicA := uuid.New()
	existing := []Assignment{{
		DoctorID:  docID,
		ClinicID:  clinicA,
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 6, 30),
		Shift:     ShiftMorning,
	}}
	candidate := Assignment{
		DoctorID:  docID,
		ClinicID:  clinicA,
		StartDate: date(2025, 3, 1),
		EndDate:   date(2025, 2, 1),
		Shift:     ShiftMorning,
	}
	if err := ValidateAssignment(candidate, date(2025, 1, 1), existing); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("got %v, want ErrInvalidDateRange", err)
	}
}

func TestIsConflict(t *testing.T) {
	if !IsConflict(ErrClinicOverlap) || !IsConflict(ErrShiftOverlap) {
		t.Error("overlap errors are conflicts")
	}
	if IsConflict(ErrInvalidDateRange) || IsConflict(ErrStartDateInPast) {
		t.Error("validation errors are not conflicts")
	}
}
