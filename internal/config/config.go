package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Limits   LimitsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds JWT signing settings
type JWTConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	ExpirationMins int
	Issuer         string
}

// AuthConfig holds refresh token settings
type AuthConfig struct {
	RefreshDuration time.Duration
	SweepInterval   time.Duration
}

// LimitsConfig holds rate limiting settings
type LimitsConfig struct {
	Rate  int // requests per window
	Burst int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           envString("SERVER_PORT", "8080"),
			Env:            envString("SERVER_ENV", "development"),
			ReadTimeout:    envDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   envDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:      envString("DB_HOST", "localhost"),
			Port:      envString("DB_PORT", "8000"),
			Namespace: envString("DB_NAMESPACE", "atrium"),
			Database:  envString("DB_DATABASE", "main"),
			User:      envString("DB_USER", "root"),
			Password:  envString("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			PrivateKeyPath: envString("JWT_PRIVATE_KEY_PATH", "./keys/private.pem"),
			PublicKeyPath:  envString("JWT_PUBLIC_KEY_PATH", "./keys/public.pem"),
			ExpirationMins: envInt("JWT_EXPIRATION_MINS", 15),
			Issuer:         envString("JWT_ISSUER", "atrium.forgo.software"),
		},
		Auth: AuthConfig{
			RefreshDuration: envDuration("AUTH_REFRESH_DURATION", 30*24*time.Hour),
			SweepInterval:   envDuration("AUTH_TOKEN_SWEEP_INTERVAL", time.Hour),
		},
		Limits: LimitsConfig{
			Rate:  envInt("RATE_LIMIT_PER_MINUTE", 100),
			Burst: envInt("RATE_LIMIT_BURST", 20),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	switch c.Server.Env {
	case "development", "production", "test":
	default:
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// Signing keys may be absent in development; the server refuses to
	// start without them in production.
	if c.IsProduction() {
		if c.JWT.PrivateKeyPath == "" {
			errs = append(errs, errors.New("JWT_PRIVATE_KEY_PATH is required in production"))
		}
		if c.JWT.PublicKeyPath == "" {
			errs = append(errs, errors.New("JWT_PUBLIC_KEY_PATH is required in production"))
		}
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	if c.Auth.RefreshDuration <= 0 {
		errs = append(errs, errors.New("AUTH_REFRESH_DURATION must be positive"))
	}
	if c.Limits.Rate <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Environment helpers. Malformed values fall back to the default
// rather than failing load; Validate reports anything that matters.

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	}
	return fallback
}
