package appointments

import (
	"strings"
	"time"

	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID             string    `json:"id"`
	DoctorID       string    `json:"doctorId"`
	PatientID      string    `json:"patientId"`
	PatientEmail   string    `json:"patientEmail"`
	PatientAddress string    `json:"patientAddress"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate enforces the record invariants. An empty status defaults to
// scheduled; anything outside the enum is rejected.
func (a *Appointment) Validate() error {
	a.DoctorID = strings.TrimSpace(a.DoctorID)
	a.PatientID = strings.TrimSpace(a.PatientID)
	a.PatientEmail = strings.ToLower(strings.TrimSpace(a.PatientEmail))
	a.PatientAddress = strings.TrimSpace(a.PatientAddress)

	switch {
	case a.DoctorID == "":
		return apperrors.Validationf("doctorId is required")
	case a.PatientID == "":
		return apperrors.Validationf("patientId is required")
	case a.PatientEmail == "":
		return apperrors.Validationf("patientEmail is required")
	case a.PatientAddress == "":
		return apperrors.Validationf("patientAddress is required")
	case a.ScheduledAt.IsZero():
		return apperrors.Validationf("scheduledAt is required")
	}

	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !a.Status.Valid() {
		return apperrors.Validationf("unknown status %q", a.Status)
	}

	return nil
}
