package appointments

import "context"

// Repo persists appointment records. Missing records are reported via
// apperrors.ErrNotFound.
type Repo interface {
	Create(ctx context.Context, appointment *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
	Update(ctx context.Context, appointment *Appointment) error
	Delete(ctx context.Context, id string) error
}
