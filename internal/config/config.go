// Package config loads process configuration from the environment into an
// explicit struct handed to constructors. Nothing reads the environment after
// startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort       = "8080"
	defaultDBPath     = "authsvc.db"
	defaultBcryptCost = 10
	defaultTokenTTL   = 7 * 24 * time.Hour

	minSecretLen = 32
)

// Config holds everything the process needs to start.
type Config struct {
	Port       string
	DBPath     string
	JWTSecret  []byte
	BcryptCost int
	TokenTTL   time.Duration
}

// Load reads configuration from the environment. JWT_SECRET is required and
// must be at least 32 bytes; there is no fallback secret.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       envOrDefault("PORT", defaultPort),
		DBPath:     envOrDefault("DATABASE_PATH", defaultDBPath),
		BcryptCost: defaultBcryptCost,
		TokenTTL:   defaultTokenTTL,
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minSecretLen)
	}
	cfg.JWTSecret = []byte(secret)

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if cost < 4 || cost > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", ttl)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
