package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/atrium/api/internal/database"
	"github.com/forgo/atrium/api/internal/service"
)

// revokedRetention is how long revoked tokens are kept for reuse detection
// before the sweeper deletes them.
const revokedRetention = 7 * 24 * time.Hour

// TokenRepository persists refresh tokens in SurrealDB. Only token hashes
// are stored, never the opaque token value itself.
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a refresh token and fills in its record ID.
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token *service.RefreshToken) error {
	result, err := r.db.Query(ctx, `
		CREATE refresh_token CONTENT {
			user: type::record($user),
			token_hash: $token_hash,
			expires_at: <datetime>$expires_at,
			created_at: time::now(),
			revoked: false
		}
	`, map[string]interface{}{
		"user":       token.UserID,
		"token_hash": token.TokenHash,
		"expires_at": token.ExpiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}
	token.ID = created.ID
	return nil
}

// GetRefreshTokenByHash looks up a refresh token by its SHA-256 hash.
// A missing token is not an error; it returns (nil, nil) so the service
// layer can treat unknown and revoked tokens differently.
func (r *TokenRepository) GetRefreshTokenByHash(ctx context.Context, hash string) (*service.RefreshToken, error) {
	result, err := r.db.QueryOne(ctx,
		`SELECT * FROM refresh_token WHERE token_hash = $hash LIMIT 1`,
		map[string]interface{}{"hash": hash},
	)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	token, err := refreshTokenFromRow(result)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return token, err
}

// RevokeRefreshToken marks the token with the given hash as revoked
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, hash string) error {
	return r.db.Execute(ctx,
		`UPDATE refresh_token SET revoked = true WHERE token_hash = $hash`,
		map[string]interface{}{"hash": hash},
	)
}

// RevokeAllUserTokens revokes every refresh token belonging to a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	return r.db.Execute(ctx,
		`UPDATE refresh_token SET revoked = true WHERE user = type::record($user)`,
		map[string]interface{}{"user": userID},
	)
}

// DeleteExpiredTokens removes refresh tokens past their expiry
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	return r.db.Execute(ctx, `DELETE refresh_token WHERE expires_at < time::now()`, nil)
}

// CleanupRevokedTokens removes revoked tokens older than the retention window
func (r *TokenRepository) CleanupRevokedTokens(ctx context.Context) error {
	cutoff := time.Now().Add(-revokedRetention).Format(time.RFC3339)
	return r.db.Execute(ctx,
		`DELETE refresh_token WHERE revoked = true AND created_at < <datetime>$cutoff`,
		map[string]interface{}{"cutoff": cutoff},
	)
}

func refreshTokenFromRow(result interface{}) (*service.RefreshToken, error) {
	data, err := unwrapRow(result)
	if err != nil {
		return nil, err
	}

	token := &service.RefreshToken{
		ID:        convertSurrealID(data["id"]),
		UserID:    convertSurrealID(data["user"]),
		TokenHash: getString(data, "token_hash"),
		Revoked:   getBool(data, "revoked"),
	}
	if t := getTime(data, "expires_at"); t != nil {
		token.ExpiresAt = *t
	}
	if t := getTime(data, "created_at"); t != nil {
		token.CreatedAt = *t
	}
	return token, nil
}
