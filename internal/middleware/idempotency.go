package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyConfig holds configuration for the idempotency store
type IdempotencyConfig struct {
	TTL     time.Duration // How long cached responses are replayable (default 24h)
	Cleanup time.Duration // Purge interval for expired entries (default 1h)
}

// IdempotencyStore caches responses to keyed mutation requests so a
// retried booking creates nothing twice. Entries are kept per caller
// and request fingerprint, and replayed until their TTL passes.
type IdempotencyStore struct {
	mu      sync.RWMutex
	entries map[string]*cachedResponse
	ttl     time.Duration
	quit    chan struct{}
}

// cachedResponse holds a settled response, or marks one still being
// produced. Waiters block on done until the first request settles.
type cachedResponse struct {
	status    int
	headers   http.Header
	body      []byte
	expiresAt time.Time
	inFlight  bool
	done      chan struct{}
}

// NewIdempotencyStore creates a store and starts its purge goroutine
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = time.Hour
	}

	s := &IdempotencyStore{
		entries: make(map[string]*cachedResponse),
		ttl:     cfg.TTL,
		quit:    make(chan struct{}),
	}
	go s.purgeLoop(cfg.Cleanup)

	return s
}

// Stop terminates the purge goroutine
func (s *IdempotencyStore) Stop() {
	close(s.quit)
}

func (s *IdempotencyStore) purgeLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purgeExpired()
		case <-s.quit:
			return
		}
	}
}

// purgeExpired drops settled entries past their TTL. In-flight entries
// are never purged; their waiters hold references to them.
func (s *IdempotencyStore) purgeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if !e.inFlight && e.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

// claim resolves a fingerprint to either a replayable response or
// ownership of the request. When the second return is true the caller
// must execute the request and settle the returned entry. When false
// the returned entry is a settled response to replay.
//
// If another request with the same fingerprint is in flight, claim
// blocks until it settles and replays its response.
func (s *IdempotencyStore) claim(key string) (*cachedResponse, bool) {
	s.mu.Lock()

	if e, ok := s.entries[key]; ok {
		switch {
		case e.inFlight:
			s.mu.Unlock()
			<-e.done

			s.mu.Lock()
			if settled := s.entries[key]; settled != nil && !settled.inFlight {
				s.mu.Unlock()
				return settled, false
			}
			// The original request vanished without settling; take over

		case e.expiresAt.After(time.Now()):
			s.mu.Unlock()
			return e, false
		}
	}

	fresh := &cachedResponse{inFlight: true, done: make(chan struct{})}
	s.entries[key] = fresh
	s.mu.Unlock()

	return fresh, true
}

// abandon releases a claimed entry without recording a response. The
// entry is removed so waiters wake, find nothing settled, and take
// over the request themselves.
func (s *IdempotencyStore) abandon(key string, e *cachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[key] == e {
		delete(s.entries, key)
	}
	close(e.done)
}

// settle records the response on a claimed entry and releases waiters
func (s *IdempotencyStore) settle(e *cachedResponse, status int, headers http.Header, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.status = status
	e.headers = headers
	e.body = body
	e.expiresAt = time.Now().Add(s.ttl)
	e.inFlight = false
	close(e.done)
}

// fingerprint derives the cache key from the caller, their idempotency
// key, and the request itself. Including method, path, and body means a
// reused key with a different payload is treated as a distinct request.
func fingerprint(caller, idempotencyKey, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(caller))
	h.Write([]byte(idempotencyKey))
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// responseBuffer tees the response into memory for caching
type responseBuffer struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *responseBuffer) WriteHeader(status int) {
	b.status = status
	b.ResponseWriter.WriteHeader(status)
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}

func replay(w http.ResponseWriter, e *cachedResponse) {
	for name, values := range e.headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}

// Idempotency returns a middleware that deduplicates POST and PATCH
// requests carrying an Idempotency-Key header. Requests without the
// header, and all other methods, pass through untouched.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get("Idempotency-Key")
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller := GetUserID(r.Context())
			if caller == "" {
				caller = r.RemoteAddr
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := fingerprint(caller, idempotencyKey, r.Method, r.URL.Path, body)

			entry, owner := store.claim(key)
			if !owner {
				replay(w, entry)
				return
			}

			// A panicking handler must not leave the entry in flight,
			// or every later request with this key would block on it
			defer func() {
				if p := recover(); p != nil {
					store.abandon(key, entry)
					panic(p)
				}
			}()

			buf := &responseBuffer{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(buf, r)

			store.settle(entry, buf.status, buf.Header().Clone(), buf.body.Bytes())
		})
	}
}
