package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicore/go-clinic-server/appointments"
	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
)

// AppointmentRepo implements appointments.Repo over the shared Storage.
type AppointmentRepo struct {
	storage *Storage
}

var _ appointments.Repo = (*AppointmentRepo)(nil)

func NewAppointmentRepo(storage *Storage) *AppointmentRepo {
	return &AppointmentRepo{storage: storage}
}

const appointmentColumns = `id, doctor_id, patient_id, patient_email, patient_address,
	scheduled_at, status, created_at, updated_at`

func (r *AppointmentRepo) Create(ctx context.Context, appointment *appointments.Appointment) error {
	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.storage.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.DoctorID,
		appointment.PatientID,
		appointment.PatientEmail,
		appointment.PatientAddress,
		appointment.ScheduledAt.UTC(),
		string(appointment.Status),
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*appointments.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = ?`

	appointment, err := r.scanAppointment(r.storage.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return appointment, nil
}

func (r *AppointmentRepo) List(ctx context.Context) ([]*appointments.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY scheduled_at`

	rows, err := r.storage.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var list []*appointments.Appointment
	for rows.Next() {
		appointment, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}

	return list, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, appointment *appointments.Appointment) error {
	appointment.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE appointments SET doctor_id = ?, patient_id = ?, patient_email = ?,
			patient_address = ?, scheduled_at = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.storage.db.ExecContext(ctx, query,
		appointment.DoctorID,
		appointment.PatientID,
		appointment.PatientEmail,
		appointment.PatientAddress,
		appointment.ScheduledAt.UTC(),
		string(appointment.Status),
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
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

func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.storage.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
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

func (r *AppointmentRepo) scanAppointment(row rowScanner) (*appointments.Appointment, error) {
	appointment := &appointments.Appointment{}
	var status string

	err := row.Scan(
		&appointment.ID,
		&appointment.DoctorID,
		&appointment.PatientID,
		&appointment.PatientEmail,
		&appointment.PatientAddress,
		&appointment.ScheduledAt,
		&status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	appointment.Status = appointments.Status(status)

	return appointment, nil
}
