package appointments_test

import (
	"context"
	"testing"
	"time"

	"github.com/clinicore/go-clinic-server/appointments"
	fakeappointmentrepo "github.com/clinicore/go-clinic-server/appointments/repofake"
	"github.com/clinicore/go-clinic-server/doctors"
	fakedoctorrepo "github.com/clinicore/go-clinic-server/doctors/repofake"
	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*appointments.Service, string) {
	t.Helper()

	doctorRepo := fakedoctorrepo.NewFakeDoctorRepo()
	doctorService, err := doctors.NewService(doctorRepo)
	require.NoError(t, err)

	doctor, err := doctorService.Create(context.Background(), &doctors.Doctor{
		FirstName:       "Jane",
		LastName:        "Smith",
		Email:           "jane.smith@clinic.example",
		Phone:           "+1-555-0101",
		Specialization:  "Cardiology",
		Department:      "Cardiology",
		Experience:      12,
		Qualification:   "MD",
		ConsultationFee: 150,
		AvailableDays:   []doctors.Weekday{doctors.Monday},
		AvailableTime:   doctors.TimeRange{Start: "09:00", End: "17:00"},
	})
	require.NoError(t, err)

	service, err := appointments.NewService(fakeappointmentrepo.NewFakeAppointmentRepo(), doctorRepo)
	require.NoError(t, err)
	return service, doctor.DoctorID
}

func validAppointment(doctorID string) *appointments.Appointment {
	return &appointments.Appointment{
		DoctorID:       doctorID,
		PatientID:      "patient-1",
		PatientEmail:   "patient@example.com",
		PatientAddress: "12 Main St",
		ScheduledAt:    time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreate_DefaultsToScheduled(t *testing.T) {
	service, doctorID := setupService(t)

	created, err := service.Create(context.Background(), validAppointment(doctorID))
	require.NoError(t, err)

	require.NotEmpty(t, created.ID)
	require.Equal(t, appointments.StatusScheduled, created.Status)
}

func TestCreate_RejectsUnknownDoctor(t *testing.T) {
	service, _ := setupService(t)

	appointment := validAppointment("DOCMISSING")
	_, err := service.Create(context.Background(), appointment)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*appointments.Appointment)
	}{
		{"missing patient id", func(a *appointments.Appointment) { a.PatientID = "" }},
		{"missing patient email", func(a *appointments.Appointment) { a.PatientEmail = "" }},
		{"missing address", func(a *appointments.Appointment) { a.PatientAddress = "" }},
		{"missing date", func(a *appointments.Appointment) { a.ScheduledAt = time.Time{} }},
		{"bad status", func(a *appointments.Appointment) { a.Status = "postponed" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, doctorID := setupService(t)
			appointment := validAppointment(doctorID)
			tt.mutate(appointment)

			_, err := service.Create(context.Background(), appointment)
			require.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	service, doctorID := setupService(t)

	created, err := service.Create(context.Background(), validAppointment(doctorID))
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), created.ID, appointments.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, appointments.StatusCompleted, updated.Status)

	_, err = service.UpdateStatus(context.Background(), created.ID, "postponed")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDelete(t *testing.T) {
	service, doctorID := setupService(t)

	created, err := service.Create(context.Background(), validAppointment(doctorID))
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	_, err = service.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
