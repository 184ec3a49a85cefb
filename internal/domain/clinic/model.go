package clinic

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcas/hcas/internal/scheduling"
)

// Clinic maps to the clinic table.
type Clinic struct {
	ID        uuid.UUID            `db:"id" json:"id"`
	Name      string               `db:"name" json:"name"`
	Email     *string              `db:"email" json:"email,omitempty"`
	Phone     *string              `db:"phone" json:"phone,omitempty"`
	Address   *string              `db:"address" json:"address,omitempty"`
	OpensAt   scheduling.ClockTime `db:"opens_at" json:"opens_at"`
	ClosesAt  scheduling.ClockTime `db:"closes_at" json:"closes_at"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt time.Time            `db:"updated_at" json:"updated_at"`
}

// Scheduling converts the record into the scheduler's view of a clinic.
func (c *Clinic) Scheduling() scheduling.Clinic {
	return scheduling.Clinic{
		ID:       c.ID,
		Name:     c.Name,
		OpensAt:  c.OpensAt,
		ClosesAt: c.ClosesAt,
	}
}
