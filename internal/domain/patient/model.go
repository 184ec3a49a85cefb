package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Deleted rows are kept and hidden
// (soft delete) so past appointments keep their reference.
type Patient struct {
	ID               uuid.UUID `db:"id" json:"id"`
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	Email            string    `db:"email" json:"email"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	Gender           *string   `db:"gender" json:"gender,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	DateOfBirth      time.Time `db:"date_of_birth" json:"date_of_birth"`
	EmergencyContact *string   `db:"emergency_contact" json:"emergency_contact,omitempty"`
	Deleted          bool      `db:"deleted" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`

	// Age is derived from DateOfBirth on read, never stored.
	Age int `db:"-" json:"age"`
}

// FullName is derived, never stored.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AgeOn returns the patient's age in whole years on the given date.
func (p *Patient) AgeOn(on time.Time) int {
	age := on.Year() - p.DateOfBirth.Year()
	birthday := time.Date(on.Year(), p.DateOfBirth.Month(), p.DateOfBirth.Day(), 0, 0, 0, 0, on.Location())
	if on.Before(birthday) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
