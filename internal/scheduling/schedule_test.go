package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildClinicSchedule(t *testing.T) {
	clinic := testClinic(t)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	morningDoc := testDoctor(t)
	eveningDoc := Doctor{
		ID:             uuid.New(),
		Name:           "Lena Vogel",
		AvailableStart: mustClock(t, "12:00"),
		AvailableEnd:   mustClock(t, "17:00"),
		SlotMinutes:    60,
	}

	assignment := func(doc Doctor, shift Shift) Assignment {
		return Assignment{
			DoctorID:  doc.ID,
			ClinicID:  clinic.ID,
			StartDate: date(2025, 3, 1),
			EndDate:   date(2025, 3, 31),
			Shift:     shift,
		}
	}

	morningAppts := []Appointment{
		{
			ID:        uuid.New(),
			DoctorID:  morningDoc.ID,
			StartTime: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
			Minutes:   30,
			Status:    StatusScheduled,
		},
		{
			ID:        uuid.New(),
			DoctorID:  morningDoc.ID,
			StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			Minutes:   30,
			Status:    StatusScheduled,
		},
		{
			// Cancelled: excluded from the report but its slot stays open.
			ID:        uuid.New(),
			DoctorID:  morningDoc.ID,
			StartTime: time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
			Minutes:   30,
			Status:    StatusCancelled,
		},
		{
			// Different day: excluded.
			ID:        uuid.New(),
			DoctorID:  morningDoc.ID,
			StartTime: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
			Minutes:   30,
			Status:    StatusScheduled,
		},
	}

	sched := BuildClinicSchedule(clinic, day, []ScheduleEntry{
		{Doctor: morningDoc, Assignment: assignment(morningDoc, ShiftMorning), Appointments: morningAppts},
		{Doctor: eveningDoc, Assignment: assignment(eveningDoc, ShiftEvening), Appointments: nil},
	})

	if sched.ClinicID != clinic.ID || sched.ClinicName != clinic.Name {
		t.Errorf("clinic identity not carried: %+v", sched)
	}
	if sched.OperatingHours != "08:00 - 17:00" {
		t.Errorf("OperatingHours = %q", sched.OperatingHours)
	}
	if len(sched.Doctors) != 2 {
		t.Fatalf("got %d doctor entries, want 2", len(sched.Doctors))
	}

	morning := sched.Doctors[0]
	if len(morning.Appointments) != 2 {
		t.Fatalf("morning doctor has %d appointments, want 2", len(morning.Appointments))
	}
	if !morning.Appointments[0].StartTime.Before(morning.Appointments[1].StartTime) {
		t.Error("appointments not ordered by start time")
	}
	// 09:00-17:00 window, 30m slots, morning shift -> 6 slots 09:00..11:30,
	// minus the two booked (09:00, 10:00); the cancelled 11:00 stays open.
	if morning.OpenSlots != 4 {
		t.Errorf("morning OpenSlots = %d, want 4", morning.OpenSlots)
	}

	evening := sched.Doctors[1]
	// 12:00-17:00 window, 60m slots, all within clinic hours and shift.
	if evening.OpenSlots != 5 {
		t.Errorf("evening OpenSlots = %d, want 5", evening.OpenSlots)
	}

	if sched.TotalAppointments != 2 {
		t.Errorf("TotalAppointments = %d, want 2", sched.TotalAppointments)
	}
	if sched.TotalOpenSlots != 9 {
		t.Errorf("TotalOpenSlots = %d, want 9", sched.TotalOpenSlots)
	}

	if len(sched.MorningRoster) != 1 || sched.MorningRoster[0] != morningDoc.Name {
		t.Errorf("MorningRoster = %v", sched.MorningRoster)
	}
	if len(sched.EveningRoster) != 1 || sched.EveningRoster[0] != eveningDoc.Name {
		t.Errorf("EveningRoster = %v", sched.EveningRoster)
	}
}

func TestBuildClinicSchedule_SkipsUncoveredAssignments(t *testing.T) {
	clinic := testClinic(t)
	doc := testDoctor(t)
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	sched := BuildClinicSchedule(clinic, day, []ScheduleEntry{{
		Doctor: doc,
		Assignment: Assignment{
			DoctorID:  doc.ID,
			ClinicID:  clinic.ID,
			StartDate: date(2025, 3, 1),
			EndDate:   date(2025, 3, 31),
			Shift:     ShiftMorning,
		},
	}})

	if len(sched.Doctors) != 0 {
		t.Errorf("expected empty schedule, got %d doctors", len(sched.Doctors))
	}
	if sched.TotalAppointments != 0 || sched.TotalOpenSlots != 0 {
		t.Errorf("expected zero totals, got %+v", sched)
	}
}
