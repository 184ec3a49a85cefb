package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, specialty Specialty, limit, offset int) ([]*Doctor, int, error)

	// Clinic assignments
	AddAssignment(ctx context.Context, a *ClinicAssignment) error
	ListAssignments(ctx context.Context, doctorID uuid.UUID) ([]*ClinicAssignment, error)
	ListAssignmentsByClinic(ctx context.Context, clinicID uuid.UUID) ([]*ClinicAssignment, error)
}
