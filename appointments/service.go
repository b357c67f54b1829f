package appointments

import (
	"context"

	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
	"github.com/clinicore/go-clinic-server/doctors"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Service implements appointment operations over a Repo. It consults the
// doctor repo so appointments can only be booked against existing doctors.
type Service struct {
	repo       Repo
	doctorRepo doctors.Repo
}

func NewService(repo Repo, doctorRepo doctors.Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[appointments.NewService] repo is required")
	}
	if doctorRepo == nil {
		return nil, errors.New("[appointments.NewService] doctor repo is required")
	}
	return &Service{repo: repo, doctorRepo: doctorRepo}, nil
}

// Create validates the record and books it against an existing doctor.
func (s *Service) Create(ctx context.Context, appointment *Appointment) (*Appointment, error) {
	if err := appointment.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.doctorRepo.GetByDoctorID(ctx, appointment.DoctorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validationf("doctor %s does not exist", appointment.DoctorID)
		}
		return nil, errors.Wrap(err, "appointments.Service.Create GetByDoctorID")
	}

	appointment.ID = uuid.New().String()
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, errors.Wrap(err, "appointments.Service.Create")
	}
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.repo.List(ctx)
}

// UpdateStatus moves an appointment through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown status %q", status)
	}

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment.Status = status
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, errors.Wrap(err, "appointments.Service.UpdateStatus")
	}
	return appointment, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
