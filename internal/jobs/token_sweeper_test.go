package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/atrium/api/internal/service"
)

// ============================================================================
// Mock Token Repository
// ============================================================================

type mockTokenRepo struct {
	deleteExpired  atomic.Int64
	cleanupRevoked atomic.Int64
	deleteErr      error
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, token *service.RefreshToken) error {
	return nil
}

func (m *mockTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*service.RefreshToken, error) {
	return nil, nil
}

func (m *mockTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	return nil
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	m.deleteExpired.Add(1)
	return m.deleteErr
}

func (m *mockTokenRepo) CleanupRevokedTokens(ctx context.Context) error {
	m.cleanupRevoked.Add(1)
	return nil
}

func newSweeper(repo *mockTokenRepo, interval time.Duration) *TokenSweeper {
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		TokenRepo: repo,
	})
	return NewTokenSweeper(tokenService, interval)
}

// ============================================================================
// RunOnce Tests
// ============================================================================

func TestTokenSweeper_RunOnce_PurgesTokens(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{}
	sweeper := newSweeper(repo, time.Hour)

	err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.deleteExpired.Load())
	assert.Equal(t, int64(1), repo.cleanupRevoked.Load())
}

func TestTokenSweeper_RunOnce_PropagatesError(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{deleteErr: errors.New("db unreachable")}
	sweeper := newSweeper(repo, time.Hour)

	err := sweeper.RunOnce(context.Background())
	require.Error(t, err)

	// The revoked-token cleanup is skipped when the expiry pass fails
	assert.Equal(t, int64(0), repo.cleanupRevoked.Load())
}

// ============================================================================
// Lifecycle Tests
// ============================================================================

func TestTokenSweeper_StartStop(t *testing.T) {
	t.Parallel()

	sweeper := newSweeper(&mockTokenRepo{}, time.Hour)

	assert.False(t, sweeper.IsRunning())

	sweeper.Start()
	assert.True(t, sweeper.IsRunning())

	sweeper.Stop()
	assert.False(t, sweeper.IsRunning())
}

func TestTokenSweeper_StartTwice_RunsOneLoop(t *testing.T) {
	t.Parallel()

	sweeper := newSweeper(&mockTokenRepo{}, time.Hour)

	sweeper.Start()
	sweeper.Start()
	assert.True(t, sweeper.IsRunning())

	// A single Stop must shut everything down
	sweeper.Stop()
	assert.False(t, sweeper.IsRunning())
}

func TestTokenSweeper_StopWithoutStart_IsNoop(t *testing.T) {
	t.Parallel()

	sweeper := newSweeper(&mockTokenRepo{}, time.Hour)
	sweeper.Stop()
	assert.False(t, sweeper.IsRunning())
}

func TestTokenSweeper_TickerSweeps(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{}
	sweeper := newSweeper(repo, 10*time.Millisecond)

	sweeper.Start()
	defer sweeper.Stop()

	deadline := time.After(2 * time.Second)
	for repo.deleteExpired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected at least one sweep before deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestTokenSweeper_DefaultInterval(t *testing.T) {
	t.Parallel()

	sweeper := newSweeper(&mockTokenRepo{}, 0)
	assert.Equal(t, time.Hour, sweeper.interval)
}
