package clinic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hcas/hcas/internal/scheduling"
)

// RosterSource resolves clinic shift assignments from the doctor domain.
type RosterSource interface {
	ClinicAssignments(ctx context.Context, clinicID uuid.UUID) ([]scheduling.Assignment, error)
	SchedulingDoctor(ctx context.Context, id uuid.UUID) (scheduling.Doctor, error)
}

// AppointmentSource resolves appointments from the appointment domain.
type AppointmentSource interface {
	SchedulingAppointments(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]scheduling.Appointment, error)
}

type Service struct {
	repo   Repository
	roster RosterSource
	appts  AppointmentSource
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetSources wires the cross-domain lookups. Called once at startup, after
// every service has been constructed.
func (s *Service) SetSources(roster RosterSource, appts AppointmentSource) {
	s.roster = roster
	s.appts = appts
}

func (s *Service) validate(c *Clinic) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.OpensAt >= c.ClosesAt {
		return fmt.Errorf("opens_at must be before closes_at")
	}
	return nil
}

func (s *Service) CreateClinic(ctx context.Context, c *Clinic) error {
	if err := s.validate(c); err != nil {
		return err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateClinic(ctx context.Context, c *Clinic) error {
	if err := s.validate(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListClinics(ctx context.Context, limit, offset int) ([]*Clinic, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Schedule builds the clinic's day view: every doctor assigned for that day
// with their appointments, open-slot counts, totals and shift rosters.
func (s *Service) Schedule(ctx context.Context, clinicID uuid.UUID, day time.Time) (scheduling.ClinicSchedule, error) {
	c, err := s.repo.GetByID(ctx, clinicID)
	if err != nil {
		return scheduling.ClinicSchedule{}, err
	}

	assignments, err := s.roster.ClinicAssignments(ctx, clinicID)
	if err != nil {
		return scheduling.ClinicSchedule{}, err
	}

	var entries []scheduling.ScheduleEntry
	for _, a := range assignments {
		if !a.Covers(day) {
			continue
		}
		doc, err := s.roster.SchedulingDoctor(ctx, a.DoctorID)
		if err != nil {
			return scheduling.ClinicSchedule{}, fmt.Errorf("doctor %s: %w", a.DoctorID, err)
		}
		appts, err := s.appts.SchedulingAppointments(ctx, a.DoctorID, day)
		if err != nil {
			return scheduling.ClinicSchedule{}, err
		}
		entries = append(entries, scheduling.ScheduleEntry{
			Doctor:       doc,
			Assignment:   a,
			Appointments: appts,
		})
	}

	return scheduling.BuildClinicSchedule(c.Scheduling(), day, entries), nil
}

// SchedulingClinic implements the clinic lookup used by the doctor and
// appointment domains.
func (s *Service) SchedulingClinic(ctx context.Context, id uuid.UUID) (scheduling.Clinic, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return scheduling.Clinic{}, err
	}
	return c.Scheduling(), nil
}
