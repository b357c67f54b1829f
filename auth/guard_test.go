package auth_test

import (
	"testing"
	"time"

	"github.com/clinicore/go-clinic-server/auth"
	"github.com/clinicore/go-clinic-server/token"
	"github.com/stretchr/testify/require"
)

func setupGuard(t *testing.T) (*auth.Guard, *token.Codec) {
	t.Helper()
	codec, err := token.NewCodec(accessSecret, refreshSecret)
	require.NoError(t, err)
	return auth.NewGuard(codec), codec
}

func TestAuthenticate_ValidBearerToken(t *testing.T) {
	guard, codec := setupGuard(t)

	signed, err := codec.SignAccess("user-1", "admin")
	require.NoError(t, err)

	principal, err := guard.Authenticate("Bearer " + signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", principal.UserID)
	require.Equal(t, "admin", principal.Role)
}

func TestAuthenticate_RejectsBadHeaders(t *testing.T) {
	guard, codec := setupGuard(t)

	signed, err := codec.SignAccess("user-1", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", signed},
		{"wrong scheme", "Basic " + signed},
		{"lowercase scheme", "bearer " + signed},
		{"empty token", "Bearer "},
		{"extra space", "Bearer  " + signed},
		{"garbage token", "Bearer garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := guard.Authenticate(tt.header)
			require.ErrorIs(t, err, auth.InvalidAccessTokenErr)
		})
	}
}

func TestAuthenticate_RejectsExpiredToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec, err := token.NewCodec(accessSecret, refreshSecret,
		token.WithNowFunc(func() time.Time { return now }),
		token.WithExpiry(15*time.Minute, time.Hour))
	require.NoError(t, err)

	signed, err := codec.SignAccess("user-1", "user")
	require.NoError(t, err)

	now = now.Add(16 * time.Minute)
	_, err = auth.NewGuard(codec).Authenticate("Bearer " + signed)
	require.ErrorIs(t, err, auth.InvalidAccessTokenErr)
}

func TestAuthorizeRole(t *testing.T) {
	guard, _ := setupGuard(t)

	require.NoError(t, guard.AuthorizeRole("admin", "admin"))
	require.ErrorIs(t, guard.AuthorizeRole("admin", "user"), auth.ForbiddenErr)
	require.ErrorIs(t, guard.AuthorizeRole("admin", ""), auth.ForbiddenErr)
	// Exact match only: no hierarchy in either direction.
	require.ErrorIs(t, guard.AuthorizeRole("user", "admin"), auth.ForbiddenErr)
}
