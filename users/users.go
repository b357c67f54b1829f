package users

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user role. Roles are flat strings with no hierarchy.
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// DefaultBcryptCost is the work factor used when no cost is configured.
const DefaultBcryptCost = 12

type User struct {
	ID           string    `json:"id,omitempty"`    // Unique identifier for the user
	Email        string    `json:"email,omitempty"` // Stored lowercase; login key
	PasswordHash string    `json:"-"`               // bcrypt hash - never serialize
	Role         RoleType  `json:"role,omitempty"`  // Defaults to RoleUser

	// RefreshTokenHash holds the SHA-256 fingerprint of the currently valid
	// refresh token, or "" when the user has no active session. At most one
	// fingerprint is live per user: issuing a new refresh token overwrites
	// the previous one.
	RefreshTokenHash string `json:"-"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasSession reports whether the user currently has an active refresh session.
func (u *User) HasSession() bool {
	return u.RefreshTokenHash != ""
}

// NormalizeEmail canonicalizes an email for storage and lookup. Emails are
// case-insensitive login keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
