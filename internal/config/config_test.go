package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "atrium",
			Database:  "main",
		},
		JWT: JWTConfig{
			PrivateKeyPath: "./keys/private.pem",
			PublicKeyPath:  "./keys/public.pem",
			ExpirationMins: 15,
			Issuer:         "atrium.forgo.software",
		},
		Auth: AuthConfig{
			RefreshDuration: 30 * 24 * time.Hour,
			SweepInterval:   time.Hour,
		},
		Limits: LimitsConfig{
			Rate:  100,
			Burst: 20,
		},
	}
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_RejectsBadFields(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantMention string
	}{
		{"unknown env", func(c *Config) { c.Server.Env = "staging" }, "SERVER_ENV"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "SERVER_PORT"},
		{"no CORS origins", func(c *Config) { c.Server.AllowedOrigins = nil }, "CORS_ALLOWED_ORIGINS"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"missing db port", func(c *Config) { c.Database.Port = "" }, "DB_PORT"},
		{"missing namespace", func(c *Config) { c.Database.Namespace = "" }, "DB_NAMESPACE"},
		{"missing database", func(c *Config) { c.Database.Database = "" }, "DB_DATABASE"},
		{"zero JWT expiry", func(c *Config) { c.JWT.ExpirationMins = 0 }, "JWT_EXPIRATION_MINS"},
		{"zero refresh duration", func(c *Config) { c.Auth.RefreshDuration = 0 }, "AUTH_REFRESH_DURATION"},
		{"zero rate limit", func(c *Config) { c.Limits.Rate = 0 }, "RATE_LIMIT_PER_MINUTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMention) {
				t.Errorf("error should mention %s, got: %v", tt.wantMention, err)
			}
		})
	}
}

func TestConfig_Validate_ProductionRequiresSigningKeys(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "production"
	cfg.JWT.PrivateKeyPath = ""
	cfg.JWT.PublicKeyPath = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing key paths in production")
	}
	for _, want := range []string{"JWT_PRIVATE_KEY_PATH", "JWT_PUBLIC_KEY_PATH"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}

	// Keys stay optional outside production
	dev := validBaseConfig()
	dev.JWT.PrivateKeyPath = ""
	dev.JWT.PublicKeyPath = ""
	if err := dev.Validate(); err != nil {
		t.Errorf("development config without keys should validate, got: %v", err)
	}
}

func TestConfig_Validate_CollectsMultipleErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Database.Host = ""
	cfg.JWT.ExpirationMins = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"SERVER_PORT", "DB_HOST", "JWT_EXPIRATION_MINS"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error should mention %s, got: %v", want, err)
		}
	}
}

func TestConfig_EnvPredicates(t *testing.T) {
	cfg := validBaseConfig()

	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("development config misreported its environment")
	}

	cfg.Server.Env = "production"
	if cfg.IsDevelopment() || !cfg.IsProduction() {
		t.Error("production config misreported its environment")
	}
}

// ============================================================================
// Environment Helper Tests
// ============================================================================

func TestEnvString(t *testing.T) {
	t.Setenv("ATRIUM_TEST_STR", "from-env")

	if got := envString("ATRIUM_TEST_STR", "fallback"); got != "from-env" {
		t.Errorf("envString set = %q, want from-env", got)
	}
	if got := envString("ATRIUM_TEST_STR_UNSET", "fallback"); got != "fallback" {
		t.Errorf("envString unset = %q, want fallback", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("ATRIUM_TEST_INT", "42")
	t.Setenv("ATRIUM_TEST_INT_BAD", "not a number")

	if got := envInt("ATRIUM_TEST_INT", 7); got != 42 {
		t.Errorf("envInt set = %d, want 42", got)
	}
	if got := envInt("ATRIUM_TEST_INT_BAD", 7); got != 7 {
		t.Errorf("envInt malformed = %d, want fallback 7", got)
	}
	if got := envInt("ATRIUM_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("envInt unset = %d, want fallback 7", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("ATRIUM_TEST_DUR", "90s")
	t.Setenv("ATRIUM_TEST_DUR_BAD", "ninety seconds")

	if got := envDuration("ATRIUM_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("envDuration set = %v, want 90s", got)
	}
	if got := envDuration("ATRIUM_TEST_DUR_BAD", time.Minute); got != time.Minute {
		t.Errorf("envDuration malformed = %v, want fallback 1m", got)
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("ATRIUM_TEST_LIST", "https://a.example.com, https://b.example.com ,https://c.example.com")

	got := envList("ATRIUM_TEST_LIST", []string{"fallback"})
	want := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
	if len(got) != len(want) {
		t.Fatalf("envList returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("envList[%d] = %q, want %q (whitespace should be trimmed)", i, got[i], want[i])
		}
	}

	if got := envList("ATRIUM_TEST_LIST_UNSET", []string{"fallback"}); len(got) != 1 || got[0] != "fallback" {
		t.Errorf("envList unset = %v, want [fallback]", got)
	}
}
