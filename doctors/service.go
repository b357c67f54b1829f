package doctors

import (
	"context"

	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Service implements doctor resource operations over a Repo.
type Service struct {
	repo Repo
}

func NewService(repo Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[doctors.NewService] repo is required")
	}
	return &Service{repo: repo}, nil
}

// Create validates the record, assigns IDs, and stores it. A doctor with the
// same email is a conflict.
func (s *Service) Create(ctx context.Context, doctor *Doctor) (*Doctor, error) {
	if err := doctor.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, doctor.Email); err == nil {
		return nil, apperrors.Wrapf(apperrors.ErrConflict, "doctor with email %s already exists", doctor.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, errors.Wrap(err, "doctors.Service.Create GetByEmail")
	}

	doctor.ID = uuid.New().String()
	doctor.DoctorID = GenerateDoctorID()
	doctor.IsActive = true

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, errors.Wrap(err, "doctors.Service.Create")
	}
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByDoctorID(ctx context.Context, doctorID string) (*Doctor, error) {
	return s.repo.GetByDoctorID(ctx, doctorID)
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.repo.List(ctx)
}

// Update re-validates the full record and re-checks email uniqueness against
// other doctors.
func (s *Service) Update(ctx context.Context, doctor *Doctor) (*Doctor, error) {
	if err := doctor.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, doctor.Email)
	if err == nil && existing.ID != doctor.ID {
		return nil, apperrors.Wrapf(apperrors.ErrConflict, "doctor with email %s already exists", doctor.Email)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, errors.Wrap(err, "doctors.Service.Update GetByEmail")
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, errors.Wrap(err, "doctors.Service.Update")
	}
	return doctor, nil
}

// Deactivate is the soft delete: the record stays but stops being active.
func (s *Service) Deactivate(ctx context.Context, id string) (*Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.IsActive = false
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, errors.Wrap(err, "doctors.Service.Deactivate")
	}
	return doctor, nil
}

// Delete permanently removes the record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
