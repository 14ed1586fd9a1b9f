package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/forgo/atrium/api/internal/service"
)

// TokenSweeper periodically removes refresh tokens that are expired or
// were revoked long enough ago that rotation reuse detection no longer
// needs them.
type TokenSweeper struct {
	tokenService *service.TokenService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex
}

// NewTokenSweeper creates a new token sweeper job
func NewTokenSweeper(tokenService *service.TokenService, interval time.Duration) *TokenSweeper {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &TokenSweeper{
		tokenService: tokenService,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the token sweeper job
func (s *TokenSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("token sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the token sweeper job
func (s *TokenSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("token sweeper stopped")
}

// run is the main loop
func (s *TokenSweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep performs one purge pass
func (s *TokenSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.tokenService.PurgeExpired(ctx); err != nil {
		slog.Error("token sweep failed", slog.Any("error", err))
	}
}

// RunOnce runs the sweep once (for testing or manual trigger)
func (s *TokenSweeper) RunOnce(ctx context.Context) error {
	return s.tokenService.PurgeExpired(ctx)
}

// IsRunning returns whether the sweeper is running
func (s *TokenSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
