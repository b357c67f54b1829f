package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clinicore/go-clinic-server/users"
	"github.com/google/uuid"
)

// UserRepo implements users.UserRepo over the shared Storage.
type UserRepo struct {
	storage *Storage
}

var _ users.UserRepo = (*UserRepo)(nil)

func NewUserRepo(storage *Storage) *UserRepo {
	return &UserRepo{storage: storage}
}

func (r *UserRepo) Create(ctx context.Context, user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, password_hash, role, refresh_token_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.storage.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.RefreshTokenHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return users.EmailTakenErr
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `
		SELECT id, email, password_hash, role, refresh_token_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.storage.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `
		SELECT id, email, password_hash, role, refresh_token_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.storage.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepo) SetRefreshTokenHash(ctx context.Context, id, hash string) error {
	query := `UPDATE users SET refresh_token_hash = ?, updated_at = ? WHERE id = ?`

	result, err := r.storage.db.ExecContext(ctx, query, hash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set refresh token hash: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return users.NotFoundErr
	}
	return nil
}

// SwapRefreshTokenHash is the conditional update backing rotation: the write
// lands only if the stored fingerprint still equals current, so of two
// concurrent refresh calls exactly one wins.
func (r *UserRepo) SwapRefreshTokenHash(ctx context.Context, id, current, next string) error {
	query := `
		UPDATE users SET refresh_token_hash = ?, updated_at = ?
		WHERE id = ? AND refresh_token_hash = ?
	`

	result, err := r.storage.db.ExecContext(ctx, query, next, time.Now().UTC(), id, current)
	if err != nil {
		return fmt.Errorf("failed to swap refresh token hash: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return users.StaleHashErr
	}
	return nil
}

func (r *UserRepo) ClearRefreshTokenHash(ctx context.Context, id string) error {
	return r.SetRefreshTokenHash(ctx, id, "")
}

func (r *UserRepo) scanUser(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	var role string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.NotFoundErr
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = users.RoleType(role)
	return user, nil
}
