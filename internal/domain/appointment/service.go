package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hcas/hcas/internal/platform/db"
	"github.com/hcas/hcas/internal/platform/lock"
	"github.com/hcas/hcas/internal/scheduling"
)

// Booking rejections. Conflicts map to 409, the contract violation to 400.
var (
	ErrPatientBusy       = errors.New("patient already has an appointment in this time range")
	ErrDoctorBusy        = errors.New("doctor already has an appointment in this time range")
	ErrOutsideAssignment = errors.New("doctor does not work at this clinic during this shift on that date")
)

// IsConflict reports whether err is a booking collision, as opposed to a
// malformed request.
func IsConflict(err error) bool {
	return errors.Is(err, ErrPatientBusy) || errors.Is(err, ErrDoctorBusy) ||
		errors.Is(err, lock.ErrNotAcquired)
}

// DoctorDirectory resolves doctors and their clinic assignments.
type DoctorDirectory interface {
	SchedulingDoctor(ctx context.Context, id uuid.UUID) (scheduling.Doctor, error)
	DoctorAssignments(ctx context.Context, id uuid.UUID) ([]scheduling.Assignment, error)
}

// PatientDirectory reports whether a patient exists and is not deleted.
type PatientDirectory interface {
	PatientActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// ClinicDirectory resolves clinics.
type ClinicDirectory interface {
	SchedulingClinic(ctx context.Context, id uuid.UUID) (scheduling.Clinic, error)
}

// TxRunner runs fn atomically against storage. Production wiring passes
// db.WithTx; tests leave it nil for a plain passthrough.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo     Repository
	doctors  DoctorDirectory
	patients PatientDirectory
	clinics  ClinicDirectory
	locker   lock.BookingLocker
	txr      TxRunner
}

func NewService(repo Repository, locker lock.BookingLocker, txr TxRunner) *Service {
	if locker == nil {
		locker = lock.NoopLocker{}
	}
	if txr == nil {
		txr = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{repo: repo, locker: locker, txr: txr}
}

// SetDirectories wires the cross-domain lookups. Called once at startup,
// after every service has been constructed.
func (s *Service) SetDirectories(doctors DoctorDirectory, patients PatientDirectory, clinics ClinicDirectory) {
	s.doctors = doctors
	s.patients = patients
	s.clinics = clinics
}

func (s *Service) validate(a *Appointment) error {
	if a.DurationMinutes < scheduling.MinDurationMinutes || a.DurationMinutes > scheduling.MaxDurationMinutes {
		return fmt.Errorf("duration_minutes must be between %d and %d",
			scheduling.MinDurationMinutes, scheduling.MaxDurationMinutes)
	}
	if !a.Reason.Valid() {
		return fmt.Errorf("invalid reason: %s", a.Reason)
	}
	if a.StartTime.Before(time.Now()) {
		return fmt.Errorf("start_time cannot be in the past")
	}
	return nil
}

// Book creates an appointment. Reference checks and the patient-side
// conflict check run up front; the doctor-side conflict check and the
// insert run under a per-doctor lock so two concurrent requests cannot
// both see a free slot.
func (s *Service) Book(ctx context.Context, a *Appointment) error {
	if a.Status == "" {
		a.Status = scheduling.StatusScheduled
	}
	if a.Reason == "" {
		a.Reason = ReasonGeneralCheckup
	}
	if err := s.validate(a); err != nil {
		return err
	}

	active, err := s.patients.PatientActive(ctx, a.PatientID)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("patient %s: %w", a.PatientID, db.ErrNotFound)
	}
	if _, err := s.doctors.SchedulingDoctor(ctx, a.DoctorID); err != nil {
		return fmt.Errorf("doctor %s: %w", a.DoctorID, err)
	}
	if _, err := s.clinics.SchedulingClinic(ctx, a.ClinicID); err != nil {
		return fmt.Errorf("clinic %s: %w", a.ClinicID, err)
	}

	assignments, err := s.doctors.DoctorAssignments(ctx, a.DoctorID)
	if err != nil {
		return err
	}
	if !scheduling.WorksClinicShift(assignments, a.DoctorID, a.ClinicID, a.StartTime) {
		return ErrOutsideAssignment
	}

	patientAppts, err := s.repo.ListByPatient(ctx, a.PatientID)
	if err != nil {
		return err
	}
	if scheduling.HasPatientConflict(a.PatientID, a.StartTime, a.EndTime(), schedulingAppts(patientAppts)) {
		return ErrPatientBusy
	}

	return s.locker.WithBookingLock(ctx, a.DoctorID, func(ctx context.Context) error {
		return s.txr(ctx, func(ctx context.Context) error {
			dayAppts, err := s.repo.ListByDoctorDate(ctx, a.DoctorID, a.StartTime)
			if err != nil {
				return err
			}
			if scheduling.HasDoctorConflict(a.DoctorID, a.StartTime, a.EndTime(), schedulingAppts(dayAppts)) {
				return ErrDoctorBusy
			}
			return s.repo.Create(ctx, a)
		})
	})
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("invalid status: %s", f.Status)
	}
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status scheduling.AppointmentStatus) (*Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SchedulingAppointments implements the appointment lookup used by the
// doctor and clinic domains.
func (s *Service) SchedulingAppointments(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]scheduling.Appointment, error) {
	appts, err := s.repo.ListByDoctorDate(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	return schedulingAppts(appts), nil
}

func schedulingAppts(appts []*Appointment) []scheduling.Appointment {
	out := make([]scheduling.Appointment, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.Scheduling())
	}
	return out
}
