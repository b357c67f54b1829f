package token

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// InvalidTokenErr is returned for any token that fails verification:
// bad signature, expired, malformed, or signed with an unexpected method.
// Callers get no further detail.
var InvalidTokenErr = errors.New("invalid token")

// AccessClaims is the claim set carried by access tokens.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set carried by refresh tokens.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// Codec signs, verifies, and fingerprints the two token classes. It holds no
// mutable state and is safe for concurrent use.
//
// Access and refresh tokens are signed with distinct secrets so that
// compromise of one class can never forge the other.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	nowFunc       func() time.Time
}

type CodecOption func(*Codec)

// WithExpiry overrides the default token lifetimes (15m access, 7d refresh).
func WithExpiry(accessExpiry, refreshExpiry time.Duration) CodecOption {
	return func(c *Codec) {
		c.accessExpiry = accessExpiry
		c.refreshExpiry = refreshExpiry
	}
}

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func NewCodec(accessSecret, refreshSecret string, options ...CodecOption) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("[NewCodec] access and refresh secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("[NewCodec] access and refresh secrets must differ")
	}

	c := &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  15 * time.Minute,
		refreshExpiry: 7 * 24 * time.Hour,
		nowFunc:       time.Now,
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// SignAccess mints a short-lived access token over {userID, role}.
func (c *Codec) SignAccess(userID, role string) (string, error) {
	now := c.nowFunc()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessExpiry)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "Codec.SignAccess")
	}
	return signed, nil
}

// SignRefresh mints a long-lived refresh token over {userID} with the
// refresh secret.
func (c *Codec) SignRefresh(userID string) (string, error) {
	now := c.nowFunc()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshExpiry)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
	if err != nil {
		return "", errors.Wrap(err, "Codec.SignRefresh")
	}
	return signed, nil
}

// VerifyAccess validates an access token and returns its claims, or
// InvalidTokenErr.
func (c *Codec) VerifyAccess(rawToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := c.verify(rawToken, claims, c.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and returns its claims, or
// InvalidTokenErr.
func (c *Codec) VerifyRefresh(rawToken string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := c.verify(rawToken, claims, c.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Codec) verify(rawToken string, claims jwt.Claims, secret []byte) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return InvalidTokenErr
	}
	return nil
}

// Fingerprint computes the hex SHA-256 digest of a raw token string. Only
// fingerprints are ever persisted; a storage compromise never yields a
// replayable token.
func Fingerprint(rawToken string) string {
	digest := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(digest[:])
}
