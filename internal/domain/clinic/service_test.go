package clinic

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hcas/hcas/internal/platform/db"
	"github.com/hcas/hcas/internal/scheduling"
)

// -- Mock Repository --

type mockRepo struct {
	clinics map[uuid.UUID]*Clinic
}

func newMockRepo() *mockRepo {
	return &mockRepo{clinics: make(map[uuid.UUID]*Clinic)}
}

func (m *mockRepo) Create(_ context.Context, c *Clinic) error {
	c.ID = uuid.New()
	m.clinics[c.ID] = c
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Clinic, error) {
	c, ok := m.clinics[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return c, nil
}

func (m *mockRepo) Update(_ context.Context, c *Clinic) error {
	if _, ok := m.clinics[c.ID]; !ok {
		return db.ErrNotFound
	}
	m.clinics[c.ID] = c
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.clinics[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.clinics, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Clinic, int, error) {
	var out []*Clinic
	for _, c := range m.clinics {
		out = append(out, c)
	}
	return out, len(out), nil
}

// -- Mock sources --

type mockRoster struct {
	assignments []scheduling.Assignment
	doctors     map[uuid.UUID]scheduling.Doctor
}

func (m *mockRoster) ClinicAssignments(_ context.Context, clinicID uuid.UUID) ([]scheduling.Assignment, error) {
	var out []scheduling.Assignment
	for _, a := range m.assignments {
		if a.ClinicID == clinicID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRoster) SchedulingDoctor(_ context.Context, id uuid.UUID) (scheduling.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return scheduling.Doctor{}, db.ErrNotFound
	}
	return d, nil
}

type mockAppts struct {
	appts []scheduling.Appointment
}

func (m *mockAppts) SchedulingAppointments(_ context.Context, doctorID uuid.UUID, day time.Time) ([]scheduling.Appointment, error) {
	var out []scheduling.Appointment
	for _, a := range m.appts {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func mustClock(t *testing.T, s string) scheduling.ClockTime {
	t.Helper()
	c, err := scheduling.ParseClock(s)
	if err != nil {
		t.Fatalf("parse clock %s: %v", s, err)
	}
	return c
}

func TestCreateClinicValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	svc.SetSources(&mockRoster{}, &mockAppts{})
	ctx := context.Background()

	bad := &Clinic{Name: "Midtown", OpensAt: mustClock(t, "18:00"), ClosesAt: mustClock(t, "08:00")}
	if err := svc.CreateClinic(ctx, bad); err == nil {
		t.Fatal("inverted hours should be rejected")
	}

	unnamed := &Clinic{OpensAt: mustClock(t, "08:00"), ClosesAt: mustClock(t, "18:00")}
	if err := svc.CreateClinic(ctx, unnamed); err == nil {
		t.Fatal("missing name should be rejected")
	}

	ok := &Clinic{Name: "Midtown", OpensAt: mustClock(t, "08:00"), ClosesAt: mustClock(t, "18:00")}
	if err := svc.CreateClinic(ctx, ok); err != nil {
		t.Fatalf("valid clinic rejected: %v", err)
	}
}

func TestSchedule(t *testing.T) {
	repo := newMockRepo()
	roster := &mockRoster{doctors: make(map[uuid.UUID]scheduling.Doctor)}
	appts := &mockAppts{}
	svc := NewService(repo)
	svc.SetSources(roster, appts)
	ctx := context.Background()

	cl := &Clinic{Name: "Downtown", OpensAt: mustClock(t, "08:00"), ClosesAt: mustClock(t, "20:00")}
	if err := repo.Create(ctx, cl); err != nil {
		t.Fatal(err)
	}

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	morningDoc := scheduling.Doctor{
		ID: uuid.New(), Name: "Asha Rao",
		AvailableStart: mustClock(t, "09:00"), AvailableEnd: mustClock(t, "12:00"), SlotMinutes: 30,
	}
	eveningDoc := scheduling.Doctor{
		ID: uuid.New(), Name: "Ravi Menon",
		AvailableStart: mustClock(t, "13:00"), AvailableEnd: mustClock(t, "18:00"), SlotMinutes: 60,
	}
	offDoc := scheduling.Doctor{ID: uuid.New(), Name: "Maya Iyer"}
	roster.doctors[morningDoc.ID] = morningDoc
	roster.doctors[eveningDoc.ID] = eveningDoc
	roster.doctors[offDoc.ID] = offDoc

	roster.assignments = []scheduling.Assignment{
		{DoctorID: morningDoc.ID, ClinicID: cl.ID, StartDate: day.AddDate(0, -1, 0), EndDate: day.AddDate(0, 1, 0), Shift: scheduling.ShiftMorning},
		{DoctorID: eveningDoc.ID, ClinicID: cl.ID, StartDate: day.AddDate(0, -1, 0), EndDate: day.AddDate(0, 1, 0), Shift: scheduling.ShiftEvening},
		// Expired contract: not part of the day's schedule.
		{DoctorID: offDoc.ID, ClinicID: cl.ID, StartDate: day.AddDate(-1, 0, 0), EndDate: day.AddDate(0, -2, 0), Shift: scheduling.ShiftMorning},
	}

	appts.appts = []scheduling.Appointment{
		{ID: uuid.New(), DoctorID: morningDoc.ID, ClinicID: cl.ID, StartTime: time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), Minutes: 30, Status: scheduling.StatusScheduled},
		{ID: uuid.New(), DoctorID: morningDoc.ID, ClinicID: cl.ID, StartTime: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), Minutes: 30, Status: scheduling.StatusCancelled},
		{ID: uuid.New(), DoctorID: eveningDoc.ID, ClinicID: cl.ID, StartTime: time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC), Minutes: 60, Status: scheduling.StatusScheduled},
	}

	sched, err := svc.Schedule(ctx, cl.ID, day)
	if err != nil {
		t.Fatal(err)
	}

	if len(sched.Doctors) != 2 {
		t.Fatalf("want 2 rostered doctors, got %d", len(sched.Doctors))
	}
	if sched.TotalAppointments != 2 {
		t.Fatalf("total appointments = %d, want 2 (cancelled excluded)", sched.TotalAppointments)
	}
	if len(sched.MorningRoster) != 1 || sched.MorningRoster[0] != "Asha Rao" {
		t.Fatalf("morning roster = %v", sched.MorningRoster)
	}
	if len(sched.EveningRoster) != 1 || sched.EveningRoster[0] != "Ravi Menon" {
		t.Fatalf("evening roster = %v", sched.EveningRoster)
	}

	// Morning doctor: 6 half-hour slots 09:00-12:00, one booked, one
	// cancelled (frees its slot) -> 5 open.
	for _, d := range sched.Doctors {
		if d.DoctorID == morningDoc.ID && d.OpenSlots != 5 {
			t.Fatalf("morning open slots = %d, want 5", d.OpenSlots)
		}
		if d.DoctorID == eveningDoc.ID && d.OpenSlots != 4 {
			t.Fatalf("evening open slots = %d, want 4", d.OpenSlots)
		}
	}
}

func TestScheduleUnknownClinic(t *testing.T) {
	svc := NewService(newMockRepo())
	svc.SetSources(&mockRoster{}, &mockAppts{})
	if _, err := svc.Schedule(context.Background(), uuid.New(), time.Now()); err == nil {
		t.Fatal("unknown clinic should error")
	}
}
