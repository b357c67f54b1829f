package users

import (
	"context"

	"github.com/pkg/errors"
)

var (
	NotFoundErr   = errors.New("user not found")
	EmailTakenErr = errors.New("email already registered")

	// StaleHashErr is returned by SwapRefreshTokenHash when the stored
	// fingerprint no longer matches the expected value. Of two concurrent
	// refresh calls with the same token, exactly one swaps; the loser gets
	// this error and must fail closed.
	StaleHashErr = errors.New("stored refresh token hash is stale")
)

// UserRepo persists user records. Email lookups are case-insensitive; callers
// pass emails through NormalizeEmail before storage.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)

	// SetRefreshTokenHash unconditionally overwrites the stored fingerprint.
	SetRefreshTokenHash(ctx context.Context, id, hash string) error

	// SwapRefreshTokenHash replaces the stored fingerprint only if it still
	// equals current. Fails with StaleHashErr otherwise.
	SwapRefreshTokenHash(ctx context.Context, id, current, next string) error

	// ClearRefreshTokenHash ends the user's session. Clearing an already
	// empty hash is a no-op, not an error.
	ClearRefreshTokenHash(ctx context.Context, id string) error
}
