package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcas/hcas/internal/scheduling"
)

// Reason is the visit reason for an appointment.
type Reason string

const (
	ReasonGeneralCheckup     Reason = "general_checkup"
	ReasonFollowUp           Reason = "follow_up"
	ReasonVaccination        Reason = "vaccination"
	ReasonEmergency          Reason = "emergency"
	ReasonLabTest            Reason = "lab_test"
	ReasonPrescriptionRefill Reason = "prescription_refill"
	ReasonConsultation       Reason = "consultation"
)

// Valid reports whether r is a known reason.
func (r Reason) Valid() bool {
	switch r {
	case ReasonGeneralCheckup, ReasonFollowUp, ReasonVaccination, ReasonEmergency,
		ReasonLabTest, ReasonPrescriptionRefill, ReasonConsultation:
		return true
	}
	return false
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID              uuid.UUID                    `db:"id" json:"id"`
	DoctorID        uuid.UUID                    `db:"doctor_id" json:"doctor_id"`
	PatientID       uuid.UUID                    `db:"patient_id" json:"patient_id"`
	ClinicID        uuid.UUID                    `db:"clinic_id" json:"clinic_id"`
	StartTime       time.Time                    `db:"start_time" json:"start_time"`
	DurationMinutes int                          `db:"duration_minutes" json:"duration_minutes"`
	Reason          Reason                       `db:"reason" json:"reason"`
	Status          scheduling.AppointmentStatus `db:"status" json:"status"`
	Note            *string                      `db:"note" json:"note,omitempty"`
	CreatedAt       time.Time                    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time                    `db:"updated_at" json:"updated_at"`
}

// EndTime is derived from the start and duration, never stored.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Scheduling converts the record into the scheduler's view of an appointment.
func (a *Appointment) Scheduling() scheduling.Appointment {
	return scheduling.Appointment{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		ClinicID:  a.ClinicID,
		StartTime: a.StartTime,
		Minutes:   a.DurationMinutes,
		Status:    a.Status,
	}
}

// ListFilter narrows List queries; zero values mean "no filter".
type ListFilter struct {
	Date      time.Time
	Status    scheduling.AppointmentStatus
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	ClinicID  uuid.UUID
}
