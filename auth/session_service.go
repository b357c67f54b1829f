package auth

import (
	"context"

	"github.com/clinicore/go-clinic-server/token"
	"github.com/clinicore/go-clinic-server/users"
	"github.com/pkg/errors"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionService orchestrates registration, login, refresh, and logout
// against the user store and the token codec.
//
// Each user is in one of two session states: no session (empty stored
// fingerprint) or an active session (fingerprint set). Issuing a refresh
// token overwrites the previous fingerprint, so at most one refresh token is
// live per user at any time. This is a single-session model, not multi-device.
type SessionService struct {
	userRepo   users.UserRepo
	codec      *token.Codec
	bcryptCost int
}

type SessionServiceOption func(*SessionService)

// WithBcryptCost overrides the password hashing work factor (default 12).
func WithBcryptCost(cost int) SessionServiceOption {
	return func(s *SessionService) {
		s.bcryptCost = cost
	}
}

func NewSessionService(userRepo users.UserRepo, codec *token.Codec, options ...SessionServiceOption) (*SessionService, error) {
	if userRepo == nil {
		return nil, errors.New("[NewSessionService] user repo is required")
	}
	if codec == nil {
		return nil, errors.New("[NewSessionService] token codec is required")
	}

	s := &SessionService{
		userRepo:   userRepo,
		codec:      codec,
		bcryptCost: users.DefaultBcryptCost,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Register creates a user with no active session. The raw password is hashed
// before storage and never logged.
func (s *SessionService) Register(ctx context.Context, email, password string) (*users.User, error) {
	email = users.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, MissingCredentialsErr
	}

	passwordHash, err := users.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "SessionService.Register HashPassword")
	}

	user := &users.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         users.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, users.EmailTakenErr) {
			return nil, users.EmailTakenErr
		}
		return nil, errors.Wrap(err, "SessionService.Register Create")
	}

	return user, nil
}

// Login verifies the credentials, mints an access/refresh token pair, and
// stores the new refresh fingerprint, replacing any prior session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = users.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, MissingCredentialsErr
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.NotFoundErr) {
			// Indistinguishable from a wrong password.
			return nil, InvalidCredentialsErr
		}
		return nil, errors.Wrap(err, "SessionService.Login GetByEmail")
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, InvalidCredentialsErr
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetRefreshTokenHash(ctx, user.ID, token.Fingerprint(pair.RefreshToken)); err != nil {
		return nil, errors.Wrap(err, "SessionService.Login SetRefreshTokenHash")
	}

	return pair, nil
}

// Refresh rotates a refresh token. The presented token must verify and its
// fingerprint must match the one on record; a mismatch is treated as reuse or
// theft, the session is invalidated, and the call fails closed. On rotation
// the stored fingerprint is swapped atomically, so of two concurrent calls
// presenting the same token only one receives a new pair.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	claims, err := s.codec.VerifyRefresh(presented)
	if err != nil {
		return nil, InvalidRefreshTokenErr
	}

	user, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, users.NotFoundErr) {
			return nil, InvalidRefreshTokenErr
		}
		return nil, errors.Wrap(err, "SessionService.Refresh GetByID")
	}

	if !user.HasSession() {
		return nil, InvalidRefreshTokenErr
	}

	presentedHash := token.Fingerprint(presented)
	if presentedHash != user.RefreshTokenHash {
		// Reuse signal: burn the session rather than accept one of two
		// concurrent claims. The legitimate holder is logged out too.
		if err := s.userRepo.ClearRefreshTokenHash(ctx, user.ID); err != nil {
			return nil, errors.Wrap(err, "SessionService.Refresh ClearRefreshTokenHash")
		}
		return nil, TokenReuseErr
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	err = s.userRepo.SwapRefreshTokenHash(ctx, user.ID, presentedHash, token.Fingerprint(pair.RefreshToken))
	if err != nil {
		if errors.Is(err, users.StaleHashErr) {
			// A concurrent refresh won the swap. Fail closed instead of
			// handing out a pair whose fingerprint was never stored.
			return nil, InvalidRefreshTokenErr
		}
		return nil, errors.Wrap(err, "SessionService.Refresh SwapRefreshTokenHash")
	}

	return pair, nil
}

// Logout ends the session named by the presented refresh token. It is
// best-effort and idempotent: a missing, malformed, or unverifiable token is
// a successful no-op, so the caller learns nothing about token validity.
// Only a store write failure is reported, and callers are expected to log it
// rather than surface it.
func (s *SessionService) Logout(ctx context.Context, presented string) error {
	if presented == "" {
		return nil
	}

	claims, err := s.codec.VerifyRefresh(presented)
	if err != nil {
		return nil
	}

	if err := s.userRepo.ClearRefreshTokenHash(ctx, claims.Subject); err != nil && !errors.Is(err, users.NotFoundErr) {
		return errors.Wrap(err, "SessionService.Logout ClearRefreshTokenHash")
	}
	return nil
}

func (s *SessionService) mintPair(user *users.User) (*TokenPair, error) {
	accessToken, err := s.codec.SignAccess(user.ID, string(user.Role))
	if err != nil {
		return nil, errors.Wrap(err, "SessionService.mintPair SignAccess")
	}
	refreshToken, err := s.codec.SignRefresh(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "SessionService.mintPair SignRefresh")
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
