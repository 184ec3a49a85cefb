package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// HasPatientConflict reports whether the candidate range [start, end)
// overlaps any existing non-cancelled appointment of the patient, at any
// doctor or clinic. A patient cannot be in two places at once; a cancelled
// appointment does not block its former time range.
func HasPatientConflict(patientID uuid.UUID, start, end time.Time, appts []Appointment) bool {
	for _, a := range appts {
		if a.PatientID != patientID || a.Status == StatusCancelled {
			continue
		}
		if Overlaps(start, end, a.StartTime, a.EndTime()) {
			return true
		}
	}
	return false
}

// HasDoctorConflict reports whether the candidate range [start, end)
// overlaps any existing non-cancelled appointment of the doctor.
func HasDoctorConflict(doctorID uuid.UUID, start, end time.Time, appts []Appointment) bool {
	for _, a := range appts {
		if a.DoctorID != doctorID || a.Status == StatusCancelled {
			continue
		}
		if Overlaps(start, end, a.StartTime, a.EndTime()) {
			return true
		}
	}
	return false
}

// WorksClinicShift reports whether some assignment puts the doctor at the
// clinic on the candidate start's calendar day, in a shift containing the
// candidate's clock time. A booking outside the doctor's contracted
// clinic/shift must be rejected by the caller.
func WorksClinicShift(assignments []Assignment, doctorID, clinicID uuid.UUID, start time.Time) bool {
	for _, a := range assignments {
		if a.DoctorID != doctorID || a.ClinicID != clinicID {
			continue
		}
		if a.Covers(start) && a.Shift.Matches(start) {
			return true
		}
	}
	return false
}
