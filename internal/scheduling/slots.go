package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// AvailableSlots walks the doctor's working window on the given day in
// SlotMinutes steps and returns, in start-time order, every slot that
//
//  1. does not overlap a non-cancelled appointment of that doctor on
//     that day,
//  2. lies fully inside the clinic's operating hours, and
//  3. starts inside the assigned shift.
//
// appts may contain appointments for other doctors or days; they are
// ignored. The walk is eager and finite: it stops once the next slot would
// run past AvailableEnd.
func AvailableSlots(doc Doctor, clinic Clinic, shift Shift, day time.Time, appts []Appointment) []AvailableSlot {
	slots := []AvailableSlot{}
	step := doc.SlotMinutes
	for cur := doc.AvailableStart; cur.Add(step) <= doc.AvailableEnd; cur = cur.Add(step) {
		start := cur.On(day)
		end := start.Add(time.Duration(step) * time.Minute)

		if doctorBusy(doc.ID, day, start, end, appts) {
			continue
		}
		if cur < clinic.OpensAt || cur.Add(step) > clinic.ClosesAt {
			continue
		}
		if !shift.MatchesClock(cur) {
			continue
		}

		slots = append(slots, AvailableSlot{
			StartTime:  start,
			EndTime:    end,
			Minutes:    step,
			ClinicID:   clinic.ID,
			ClinicName: clinic.Name,
		})
	}
	return slots
}

// ActiveAssignment returns the first assignment of the doctor covering the
// given day. A doctor split across clinics by shift may hold more than one
// covering assignment; the first in slice order wins, so callers pass
// assignments in a stable order (the repository sorts by start date, then
// creation time).
func ActiveAssignment(assignments []Assignment, doctorID uuid.UUID, day time.Time) (Assignment, bool) {
	for _, a := range assignments {
		if a.DoctorID == doctorID && a.Covers(day) {
			return a, true
		}
	}
	return Assignment{}, false
}

func doctorBusy(doctorID uuid.UUID, day time.Time, start, end time.Time, appts []Appointment) bool {
	for _, a := range appts {
		if a.DoctorID != doctorID || a.Status == StatusCancelled {
			continue
		}
		if !sameDate(a.StartTime, day) {
			continue
		}
		if Overlaps(start, end, a.StartTime, a.EndTime()) {
			return true
		}
	}
	return false
}
