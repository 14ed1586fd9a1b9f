// Package config manages application configuration for the Atrium API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // report every missing or invalid setting at once
//	}
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - AuthConfig: refresh token lifetime and sweep interval
//   - LimitsConfig: rate limiting
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	SERVER_ENV            - development, production, or test
//	DB_HOST / DB_PORT     - SurrealDB endpoint
//	DB_NAMESPACE / DB_DATABASE
//	DB_USER / DB_PASSWORD
//	JWT_PRIVATE_KEY_PATH  - RSA private key for signing
//	JWT_PUBLIC_KEY_PATH   - RSA public key for validation
//	JWT_EXPIRATION_MINS   - access token lifetime
//	AUTH_REFRESH_DURATION - refresh token lifetime (default: 720h)
//	RATE_LIMIT_PER_MINUTE / RATE_LIMIT_BURST
//
// Sensible defaults are provided for development; Validate enforces the
// stricter production requirements.
package config
