package auth

import "errors"

var (
	// MissingCredentialsErr maps to 400.
	MissingCredentialsErr = errors.New("email and password required")

	// InvalidCredentialsErr is returned for both an unknown email and a
	// wrong password, so a caller cannot enumerate registered accounts.
	InvalidCredentialsErr = errors.New("invalid credentials")

	// InvalidRefreshTokenErr covers a missing, malformed, expired, or
	// sessionless refresh token.
	InvalidRefreshTokenErr = errors.New("invalid refresh token")

	// TokenReuseErr signals a presented refresh token whose fingerprint no
	// longer matches the stored one. The session has already been invalidated
	// by the time this error is returned.
	TokenReuseErr = errors.New("refresh token reuse detected")

	InvalidAccessTokenErr = errors.New("invalid access token")
	ForbiddenErr          = errors.New("forbidden")
)
