package doctor

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hcas/hcas/internal/platform/db"
	"github.com/hcas/hcas/internal/scheduling"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, first_name, last_name, email, phone, license_number, specialty,
	available_start, available_end, slot_minutes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (
			id, first_name, last_name, email, phone, license_number, specialty,
			available_start, available_end, slot_minutes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		d.ID, d.FirstName, d.LastName, d.Email, d.Phone, d.LicenseNumber, d.Specialty,
		int(d.AvailableStart), int(d.AvailableEnd), d.SlotMinutes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET
			first_name=$2, last_name=$3, email=$4, phone=$5, license_number=$6,
			specialty=$7, available_start=$8, available_end=$9, slot_minutes=$10,
			updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.FirstName, d.LastName, d.Email, d.Phone, d.LicenseNumber,
		d.Specialty, int(d.AvailableStart), int(d.AvailableEnd), d.SlotMinutes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, specialty Specialty, limit, offset int) ([]*Doctor, int, error) {
	where := ``
	args := []interface{}{}
	if specialty != "" {
		where = ` WHERE specialty = $1`
		args = append(args, specialty)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := `SELECT ` + doctorCols + ` FROM doctor` + where +
		` ORDER BY last_name, first_name LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := r.conn(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []*Doctor
	for rows.Next() {
		d, err := scanDoctorRow(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, d)
	}
	return docs, total, rows.Err()
}

func (r *repoPG) AddAssignment(ctx context.Context, a *ClinicAssignment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor_clinic (id, doctor_id, clinic_id, start_date, end_date, shift)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.DoctorID, a.ClinicID, a.StartDate, a.EndDate, a.Shift,
	)
	return err
}

func (r *repoPG) ListAssignments(ctx context.Context, doctorID uuid.UUID) ([]*ClinicAssignment, error) {
	return r.queryAssignments(ctx, `WHERE doctor_id = $1`, doctorID)
}

func (r *repoPG) ListAssignmentsByClinic(ctx context.Context, clinicID uuid.UUID) ([]*ClinicAssignment, error) {
	return r.queryAssignments(ctx, `WHERE clinic_id = $1`, clinicID)
}

func (r *repoPG) queryAssignments(ctx context.Context, where string, arg interface{}) ([]*ClinicAssignment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, doctor_id, clinic_id, start_date, end_date, shift, created_at
		FROM doctor_clinic `+where+` ORDER BY start_date, created_at`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ClinicAssignment
	for rows.Next() {
		var a ClinicAssignment
		var shift string
		if err := rows.Scan(&a.ID, &a.DoctorID, &a.ClinicID, &a.StartDate, &a.EndDate, &shift, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Shift = scheduling.Shift(shift)
		out = append(out, &a)
	}
	return out, rows.Err()
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	d, err := scanDoctorRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return d, err
}

func scanDoctorRow(row pgx.Row) (*Doctor, error) {
	var d Doctor
	var start, end int
	var specialty string
	err := row.Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Phone, &d.LicenseNumber,
		&specialty, &start, &end, &d.SlotMinutes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Specialty = Specialty(specialty)
	d.AvailableStart = scheduling.ClockTime(start)
	d.AvailableEnd = scheduling.ClockTime(end)
	return &d, nil
}
