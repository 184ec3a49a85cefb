package scheduling

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one doctor's input to the clinic schedule report: the
// doctor, their assignment at the clinic, and their appointments. The caller
// resolves records from storage; appointments for other days or doctors are
// filtered out here.
type ScheduleEntry struct {
	Doctor       Doctor
	Assignment   Assignment
	Appointments []Appointment
}

// DoctorDaySchedule is one doctor's row in the clinic schedule report.
type DoctorDaySchedule struct {
	DoctorID     uuid.UUID     `json:"doctor_id"`
	DoctorName   string        `json:"doctor_name"`
	Shift        Shift         `json:"shift"`
	Appointments []Appointment `json:"appointments"`
	OpenSlots    int           `json:"open_slots"`
}

// ClinicSchedule is the clinic-wide view of one day: every assigned doctor's
// appointments and remaining capacity, with shift rosters and totals.
type ClinicSchedule struct {
	ClinicID          uuid.UUID           `json:"clinic_id"`
	ClinicName        string              `json:"clinic_name"`
	Date              time.Time           `json:"date"`
	OperatingHours    string              `json:"operating_hours"`
	Doctors           []DoctorDaySchedule `json:"doctors"`
	TotalAppointments int                 `json:"total_appointments"`
	TotalOpenSlots    int                 `json:"total_open_slots"`
	MorningRoster     []string            `json:"morning_roster"`
	EveningRoster     []string            `json:"evening_roster"`
}

// BuildClinicSchedule reduces the per-doctor entries into the clinic's
// schedule for the given day. Entries whose assignment does not cover the
// day are skipped. Per-doctor appointment lists exclude cancelled bookings
// and are ordered by start time; open-slot counts come from AvailableSlots,
// so they honor clinic hours and shift boundaries.
func BuildClinicSchedule(clinic Clinic, day time.Time, entries []ScheduleEntry) ClinicSchedule {
	sched := ClinicSchedule{
		ClinicID:       clinic.ID,
		ClinicName:     clinic.Name,
		Date:           dateOnly(day),
		OperatingHours: clinic.OpensAt.String() + " - " + clinic.ClosesAt.String(),
		Doctors:        []DoctorDaySchedule{},
		MorningRoster:  []string{},
		EveningRoster:  []string{},
	}

	for _, e := range entries {
		if !e.Assignment.Covers(day) {
			continue
		}

		appts := make([]Appointment, 0, len(e.Appointments))
		for _, a := range e.Appointments {
			if a.DoctorID != e.Doctor.ID || a.Status == StatusCancelled {
				continue
			}
			if !sameDate(a.StartTime, day) {
				continue
			}
			appts = append(appts, a)
		}
		sort.Slice(appts, func(i, j int) bool {
			return appts[i].StartTime.Before(appts[j].StartTime)
		})

		open := len(AvailableSlots(e.Doctor, clinic, e.Assignment.Shift, day, e.Appointments))

		sched.Doctors = append(sched.Doctors, DoctorDaySchedule{
			DoctorID:     e.Doctor.ID,
			DoctorName:   e.Doctor.Name,
			Shift:        e.Assignment.Shift,
			Appointments: appts,
			OpenSlots:    open,
		})
		sched.TotalAppointments += len(appts)
		sched.TotalOpenSlots += open

		switch e.Assignment.Shift {
		case ShiftMorning:
			sched.MorningRoster = append(sched.MorningRoster, e.Doctor.Name)
		case ShiftEvening:
			sched.EveningRoster = append(sched.EveningRoster, e.Doctor.Name)
		}
	}

	return sched
}
