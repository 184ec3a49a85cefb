package doctor

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcas/hcas/internal/scheduling"
)

// Specialty is a doctor's medical specialty.
type Specialty string

const (
	SpecialtyGeneralPractitioner Specialty = "general_practitioner"
	SpecialtyCardiologist        Specialty = "cardiologist"
	SpecialtyDermatologist       Specialty = "dermatologist"
	SpecialtyNeurologist         Specialty = "neurologist"
	SpecialtyOrthopedist         Specialty = "orthopedist"
	SpecialtyPediatrician        Specialty = "pediatrician"
	SpecialtyPsychiatrist        Specialty = "psychiatrist"
	SpecialtyRadiologist         Specialty = "radiologist"
	SpecialtyOphthalmologist     Specialty = "ophthalmologist"
)

// Valid reports whether s is a known specialty.
func (s Specialty) Valid() bool {
	switch s {
	case SpecialtyGeneralPractitioner, SpecialtyCardiologist, SpecialtyDermatologist,
		SpecialtyNeurologist, SpecialtyOrthopedist, SpecialtyPediatrician,
		SpecialtyPsychiatrist, SpecialtyRadiologist, SpecialtyOphthalmologist:
		return true
	}
	return false
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID             uuid.UUID            `db:"id" json:"id"`
	FirstName      string               `db:"first_name" json:"first_name"`
	LastName       string               `db:"last_name" json:"last_name"`
	Email          string               `db:"email" json:"email"`
	Phone          *string              `db:"phone" json:"phone,omitempty"`
	LicenseNumber  string               `db:"license_number" json:"license_number"`
	Specialty      Specialty            `db:"specialty" json:"specialty"`
	AvailableStart scheduling.ClockTime `db:"available_start" json:"available_start"`
	AvailableEnd   scheduling.ClockTime `db:"available_end" json:"available_end"`
	SlotMinutes    int                  `db:"slot_minutes" json:"slot_minutes"`
	CreatedAt      time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `db:"updated_at" json:"updated_at"`
}

// FullName is derived, never stored.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// Scheduling converts the record into the scheduler's view of a doctor.
func (d *Doctor) Scheduling() scheduling.Doctor {
	return scheduling.Doctor{
		ID:             d.ID,
		Name:           d.FullName(),
		AvailableStart: d.AvailableStart,
		AvailableEnd:   d.AvailableEnd,
		SlotMinutes:    d.SlotMinutes,
	}
}

// ClinicAssignment maps to the doctor_clinic table: a shift contract at a
// clinic for an inclusive date range.
type ClinicAssignment struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	DoctorID  uuid.UUID        `db:"doctor_id" json:"doctor_id"`
	ClinicID  uuid.UUID        `db:"clinic_id" json:"clinic_id"`
	StartDate time.Time        `db:"start_date" json:"start_date"`
	EndDate   time.Time        `db:"end_date" json:"end_date"`
	Shift     scheduling.Shift `db:"shift" json:"shift"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// Scheduling converts the record into the scheduler's view of an assignment.
func (a *ClinicAssignment) Scheduling() scheduling.Assignment {
	return scheduling.Assignment{
		DoctorID:  a.DoctorID,
		ClinicID:  a.ClinicID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Shift:     a.Shift,
	}
}
