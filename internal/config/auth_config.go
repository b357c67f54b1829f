package config

import (
	"strconv"
	"time"
)

type AuthConfig interface {
	GetAccessTokenSecret() string
	GetRefreshTokenSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetBcryptCost() int
	GetCookieName() string
	GetCookiePath() string
	GetCookieSecure() bool
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAccessTokenSecret() string {
	return GetEnv("JWT_ACCESS_SECRET", "")
}

func (Auth) GetRefreshTokenSecret() string {
	return GetEnv("JWT_REFRESH_SECRET", "")
}

func (Auth) GetAccessTokenExpiry() time.Duration {
	return getDurationEnv("ACCESS_TOKEN_EXPIRY", 15*time.Minute)
}

func (Auth) GetRefreshTokenExpiry() time.Duration {
	return getDurationEnv("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour)
}

func (Auth) GetBcryptCost() int {
	cost, err := strconv.Atoi(GetEnv("BCRYPT_COST", "12"))
	if err != nil {
		return 12
	}
	return cost
}

func (Auth) GetCookieName() string {
	return GetEnv("COOKIE_NAME", "jid")
}

func (Auth) GetCookiePath() string {
	// Covers both the refresh and logout endpoints, nothing else.
	return GetEnv("COOKIE_PATH", "/api/auth")
}

func (Auth) GetCookieSecure() bool {
	return GetEnv("COOKIE_SECURE", "false") == "true"
}

func getDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
