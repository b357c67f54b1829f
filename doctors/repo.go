package doctors

import "context"

// Repo persists doctor records. Implementations report duplicate emails via
// apperrors.ErrConflict and missing records via apperrors.ErrNotFound.
type Repo interface {
	Create(ctx context.Context, doctor *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetByDoctorID(ctx context.Context, doctorID string) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
	Update(ctx context.Context, doctor *Doctor) error
	Delete(ctx context.Context, id string) error
}
