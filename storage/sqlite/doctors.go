package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clinicore/go-clinic-server/doctors"
	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
)

// DoctorRepo implements doctors.Repo over the shared Storage.
type DoctorRepo struct {
	storage *Storage
}

var _ doctors.Repo = (*DoctorRepo)(nil)

func NewDoctorRepo(storage *Storage) *DoctorRepo {
	return &DoctorRepo{storage: storage}
}

const doctorColumns = `id, doctor_id, first_name, last_name, email, phone, specialization,
	department, experience, qualification, consultation_fee, available_days,
	available_start, available_end, is_active, created_at, updated_at`

func (r *DoctorRepo) Create(ctx context.Context, doctor *doctors.Doctor) error {
	now := time.Now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	days, err := json.Marshal(doctor.AvailableDays)
	if err != nil {
		return fmt.Errorf("failed to marshal available days: %w", err)
	}

	query := `
		INSERT INTO doctors (` + doctorColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.storage.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.DoctorID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.Department,
		doctor.Experience,
		doctor.Qualification,
		doctor.ConsultationFee,
		string(days),
		doctor.AvailableTime.Start,
		doctor.AvailableTime.End,
		doctor.IsActive,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to insert doctor: %w", err)
	}

	return nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id string) (*doctors.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = ?`
	return r.scanDoctor(r.storage.db.QueryRowContext(ctx, query, id))
}

func (r *DoctorRepo) GetByDoctorID(ctx context.Context, doctorID string) (*doctors.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE doctor_id = ?`
	return r.scanDoctor(r.storage.db.QueryRowContext(ctx, query, doctorID))
}

func (r *DoctorRepo) GetByEmail(ctx context.Context, email string) (*doctors.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE email = ?`
	return r.scanDoctor(r.storage.db.QueryRowContext(ctx, query, email))
}

func (r *DoctorRepo) List(ctx context.Context) ([]*doctors.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY created_at DESC`

	rows, err := r.storage.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	var list []*doctors.Doctor
	for rows.Next() {
		doctor, err := r.scanDoctorRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate doctors: %w", err)
	}

	return list, nil
}

func (r *DoctorRepo) Update(ctx context.Context, doctor *doctors.Doctor) error {
	doctor.UpdatedAt = time.Now().UTC()

	days, err := json.Marshal(doctor.AvailableDays)
	if err != nil {
		return fmt.Errorf("failed to marshal available days: %w", err)
	}

	query := `
		UPDATE doctors SET first_name = ?, last_name = ?, email = ?, phone = ?,
			specialization = ?, department = ?, experience = ?, qualification = ?,
			consultation_fee = ?, available_days = ?, available_start = ?,
			available_end = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.storage.db.ExecContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.Department,
		doctor.Experience,
		doctor.Qualification,
		doctor.ConsultationFee,
		string(days),
		doctor.AvailableTime.Start,
		doctor.AvailableTime.End,
		doctor.IsActive,
		doctor.UpdatedAt,
		doctor.ID,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id string) error {
	result, err := r.storage.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *DoctorRepo) scanDoctor(row *sql.Row) (*doctors.Doctor, error) {
	doctor, err := r.scanDoctorRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return doctor, nil
}

func (r *DoctorRepo) scanDoctorRow(row rowScanner) (*doctors.Doctor, error) {
	doctor := &doctors.Doctor{}
	var days string

	err := row.Scan(
		&doctor.ID,
		&doctor.DoctorID,
		&doctor.FirstName,
		&doctor.LastName,
		&doctor.Email,
		&doctor.Phone,
		&doctor.Specialization,
		&doctor.Department,
		&doctor.Experience,
		&doctor.Qualification,
		&doctor.ConsultationFee,
		&days,
		&doctor.AvailableTime.Start,
		&doctor.AvailableTime.End,
		&doctor.IsActive,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan doctor: %w", err)
	}

	if err := json.Unmarshal([]byte(days), &doctor.AvailableDays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal available days: %w", err)
	}

	return doctor, nil
}
