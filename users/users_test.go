package users_test

import (
	"testing"

	"github.com/clinicore/go-clinic-server/users"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Password1", false},
		{"too short", "Pw1", true},
		{"no uppercase", "password1", true},
		{"no lowercase", "PASSWORD1", true},
		{"no number", "Password", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := users.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := users.HashPassword("Password1", 4) // low cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "Password1", hash)

	require.True(t, users.CheckPasswordHash("Password1", hash))
	require.False(t, users.CheckPasswordHash("Password2", hash))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@x.com", users.NormalizeEmail(" A@X.Com "))
}
