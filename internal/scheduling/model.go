package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Duration bounds for appointments and doctor slot granularity, in minutes.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480
)

// AppointmentStatus is the lifecycle state of a booked appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "noshow"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Doctor is the slice of a doctor record the scheduler needs: the daily
// working window and the fixed slot granularity.
type Doctor struct {
	ID             uuid.UUID
	Name           string
	AvailableStart ClockTime
	AvailableEnd   ClockTime
	SlotMinutes    int
}

// Clinic is the slice of a clinic record the scheduler needs.
type Clinic struct {
	ID       uuid.UUID
	Name     string
	OpensAt  ClockTime
	ClosesAt ClockTime
}

// Assignment grants a doctor a shift at a clinic for an inclusive date range.
type Assignment struct {
	DoctorID  uuid.UUID
	ClinicID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Shift     Shift
}

// Covers reports whether the assignment's date range includes the given day.
func (a Assignment) Covers(day time.Time) bool {
	return dateWithin(day, a.StartDate, a.EndDate)
}

// Appointment is a booked appointment as seen by the scheduler.
type Appointment struct {
	ID        uuid.UUID         `json:"id"`
	DoctorID  uuid.UUID         `json:"doctor_id"`
	PatientID uuid.UUID         `json:"patient_id"`
	ClinicID  uuid.UUID         `json:"clinic_id"`
	StartTime time.Time         `json:"start_time"`
	Minutes   int               `json:"duration_minutes"`
	Status    AppointmentStatus `json:"status"`
}

// EndTime is derived from the start and duration, never stored.
func (a Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.Minutes) * time.Minute)
}

// AvailableSlot is one bookable window produced by the slot generator.
type AvailableSlot struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Minutes    int       `json:"duration_minutes"`
	ClinicID   uuid.UUID `json:"clinic_id"`
	ClinicName string    `json:"clinic_name"`
}

// Label renders the slot as a human-readable range, e.g. "09:00 AM - 09:30 AM".
func (s AvailableSlot) Label() string {
	return s.StartTime.Format("03:04 PM") + " - " + s.EndTime.Format("03:04 PM")
}
