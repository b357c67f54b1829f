package auth

import (
	"strings"

	"github.com/clinicore/go-clinic-server/token"
)

// Principal identifies an authenticated caller.
type Principal struct {
	UserID string
	Role   string
}

// Guard authenticates bearer headers and checks roles. It is a pure function
// of its inputs and the access secret; no I/O.
type Guard struct {
	codec *token.Codec
}

func NewGuard(codec *token.Codec) *Guard {
	return &Guard{codec: codec}
}

// Authenticate requires a header of the literal form "Bearer <token>". A
// missing header, a different scheme, or a failing access token all yield
// InvalidAccessTokenErr.
func (g *Guard) Authenticate(bearerHeaderValue string) (*Principal, error) {
	parts := strings.Split(bearerHeaderValue, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, InvalidAccessTokenErr
	}

	claims, err := g.codec.VerifyAccess(parts[1])
	if err != nil {
		return nil, InvalidAccessTokenErr
	}

	return &Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

// AuthorizeRole requires an exact role match; there is no role hierarchy.
func (g *Guard) AuthorizeRole(requiredRole, actualRole string) error {
	if requiredRole != actualRole {
		return ForbiddenErr
	}
	return nil
}
