package scheduling

import (
	"errors"
	"time"
)

// Assignment validation verdicts. ErrInvalidDateRange and ErrStartDateInPast
// are validation failures (the request itself is malformed); ErrClinicOverlap
// and ErrShiftOverlap are conflicts with existing assignments.
var (
	ErrInvalidDateRange = errors.New("assignment start date must be before end date")
	ErrStartDateInPast  = errors.New("assignment start date cannot be in the past")
	ErrClinicOverlap    = errors.New("doctor already assigned to this clinic during overlapping dates")
	ErrShiftOverlap     = errors.New("doctor already assigned to a clinic in this shift during overlapping dates")
)

// IsConflict reports whether err is an assignment or booking conflict, as
// opposed to a malformed request.
func IsConflict(err error) bool {
	return errors.Is(err, ErrClinicOverlap) || errors.Is(err, ErrShiftOverlap)
}

// ValidateAssignment decides whether candidate may be created given the
// doctor's existing assignments. today anchors the retroactivity check and
// is passed in so the decision stays deterministic. Checks run in a fixed
// order and the first failure wins:
//
//  1. the date range must be non-empty (start strictly before end),
//  2. the range may not start before today,
//  3. the doctor may not already hold an assignment at the same clinic
//     with an overlapping date range,
//  4. the doctor may not already hold an assignment in the same shift at
//     any clinic with an overlapping date range (one clinic per shift).
//
// Date comparisons ignore time of day; range overlap uses inclusive bounds.
func ValidateAssignment(candidate Assignment, today time.Time, existing []Assignment) error {
	if !dateOnly(candidate.StartDate).Before(dateOnly(candidate.EndDate)) {
		return ErrInvalidDateRange
	}
	if dateOnly(candidate.StartDate).Before(dateOnly(today)) {
		return ErrStartDateInPast
	}
	for _, a := range existing {
		if a.DoctorID != candidate.DoctorID || a.ClinicID != candidate.ClinicID {
			continue
		}
		if dateRangesOverlap(candidate.StartDate, candidate.EndDate, a.StartDate, a.EndDate) {
			return ErrClinicOverlap
		}
	}
	for _, a := range existing {
		if a.DoctorID != candidate.DoctorID || a.Shift != candidate.Shift {
			continue
		}
		if dateRangesOverlap(candidate.StartDate, candidate.EndDate, a.StartDate, a.EndDate) {
			return ErrShiftOverlap
		}
	}
	return nil
}
