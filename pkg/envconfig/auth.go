package envconfig

import (
	"strconv"
	"time"
)

// AuthConfig holds JWT settings loaded from the environment.
type AuthConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// LoadAuthConfig loads JWT configuration from environment variables.
// Defaults: 30 minute access tokens, 7 day refresh tokens.
func LoadAuthConfig() AuthConfig {
	config := AuthConfig{
		SecretKey:       GetEnv("SECRET_KEY", ""),
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	if minutesStr := GetEnv("ACCESS_TOKEN_EXPIRE_MINUTES", ""); minutesStr != "" {
		if minutes, err := strconv.Atoi(minutesStr); err == nil && minutes > 0 {
			config.AccessTokenTTL = time.Duration(minutes) * time.Minute
		}
	}

	if daysStr := GetEnv("REFRESH_TOKEN_EXPIRE_DAYS", ""); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			config.RefreshTokenTTL = time.Duration(days) * 24 * time.Hour
		}
	}

	return config
}
