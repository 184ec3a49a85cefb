package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hcas/hcas/internal/scheduling"
)

// ClinicDirectory resolves clinics from the clinic domain.
type ClinicDirectory interface {
	SchedulingClinic(ctx context.Context, id uuid.UUID) (scheduling.Clinic, error)
}

// AppointmentSource resolves appointments from the appointment domain.
type AppointmentSource interface {
	SchedulingAppointments(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]scheduling.Appointment, error)
}

type Service struct {
	repo    Repository
	clinics ClinicDirectory
	appts   AppointmentSource
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetDirectories wires the cross-domain lookups. Called once at startup,
// after every service has been constructed.
func (s *Service) SetDirectories(clinics ClinicDirectory, appts AppointmentSource) {
	s.clinics = clinics
	s.appts = appts
}

func (s *Service) validate(d *Doctor) error {
	if d.FirstName == "" || d.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !d.Specialty.Valid() {
		return fmt.Errorf("invalid specialty: %s", d.Specialty)
	}
	if d.AvailableStart >= d.AvailableEnd {
		return fmt.Errorf("available_start must be before available_end")
	}
	if d.SlotMinutes < scheduling.MinDurationMinutes || d.SlotMinutes > scheduling.MaxDurationMinutes {
		return fmt.Errorf("slot_minutes must be between %d and %d",
			scheduling.MinDurationMinutes, scheduling.MaxDurationMinutes)
	}
	return nil
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if err := s.validate(d); err != nil {
		return err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if err := s.validate(d); err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, specialty Specialty, limit, offset int) ([]*Doctor, int, error) {
	if specialty != "" && !specialty.Valid() {
		return nil, 0, fmt.Errorf("invalid specialty: %s", specialty)
	}
	return s.repo.List(ctx, specialty, limit, offset)
}

// AssignClinic grants the doctor a shift contract at a clinic. The candidate
// is checked against the doctor's existing assignments; overlap errors
// satisfy scheduling.IsConflict.
func (s *Service) AssignClinic(ctx context.Context, a *ClinicAssignment) error {
	if !a.Shift.Valid() {
		return fmt.Errorf("invalid shift: %s", a.Shift)
	}
	if _, err := s.repo.GetByID(ctx, a.DoctorID); err != nil {
		return err
	}
	if _, err := s.clinics.SchedulingClinic(ctx, a.ClinicID); err != nil {
		return err
	}

	existing, err := s.repo.ListAssignments(ctx, a.DoctorID)
	if err != nil {
		return err
	}
	current := make([]scheduling.Assignment, 0, len(existing))
	for _, e := range existing {
		current = append(current, e.Scheduling())
	}

	if err := scheduling.ValidateAssignment(a.Scheduling(), time.Now(), current); err != nil {
		return err
	}
	return s.repo.AddAssignment(ctx, a)
}

func (s *Service) ListAssignments(ctx context.Context, doctorID uuid.UUID) ([]*ClinicAssignment, error) {
	if _, err := s.repo.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignments(ctx, doctorID)
}

// AvailableSlots computes the doctor's bookable windows for one day. The
// clinic and shift come from the assignment covering that day; without one
// the doctor has no slots.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]scheduling.AvailableSlot, error) {
	doc, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListAssignments(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	current := make([]scheduling.Assignment, 0, len(assignments))
	for _, a := range assignments {
		current = append(current, a.Scheduling())
	}

	active, ok := scheduling.ActiveAssignment(current, doctorID, day)
	if !ok {
		return []scheduling.AvailableSlot{}, nil
	}

	clinic, err := s.clinics.SchedulingClinic(ctx, active.ClinicID)
	if err != nil {
		return nil, err
	}
	appts, err := s.appts.SchedulingAppointments(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	return scheduling.AvailableSlots(doc.Scheduling(), clinic, active.Shift, day, appts), nil
}

// Schedule returns the doctor's non-cancelled appointments for one day.
func (s *Service) Schedule(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]scheduling.Appointment, error) {
	if _, err := s.repo.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	appts, err := s.appts.SchedulingAppointments(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	out := make([]scheduling.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Status == scheduling.StatusCancelled {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// SchedulingDoctor implements the appointment domain's doctor lookup.
func (s *Service) SchedulingDoctor(ctx context.Context, id uuid.UUID) (scheduling.Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return scheduling.Doctor{}, err
	}
	return d.Scheduling(), nil
}

// DoctorAssignments implements the appointment domain's assignment lookup.
func (s *Service) DoctorAssignments(ctx context.Context, id uuid.UUID) ([]scheduling.Assignment, error) {
	assignments, err := s.repo.ListAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]scheduling.Assignment, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.Scheduling())
	}
	return out, nil
}

// ClinicAssignments implements the clinic domain's roster lookup.
func (s *Service) ClinicAssignments(ctx context.Context, clinicID uuid.UUID) ([]scheduling.Assignment, error) {
	assignments, err := s.repo.ListAssignmentsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	out := make([]scheduling.Assignment, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.Scheduling())
	}
	return out, nil
}
