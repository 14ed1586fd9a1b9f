// Package middleware provides the HTTP middleware stack for the Atrium API.
//
// The global chain, assembled with Chain in cmd/server, runs RequestID,
// Logger, Recovery, CORS, RateLimit, Idempotency, and Compress around every
// request. Auth and AdminAuth wrap individual routes: Auth validates the
// bearer token and stores the caller's identity in the request context,
// AdminAuth additionally rejects tokens without the admin role.
//
// Downstream code reads identity through the context helpers:
//
//	userID := middleware.GetUserID(r.Context())
//	email := middleware.GetUserEmail(r.Context())
//	claims := middleware.GetClaims(r.Context())
//	reqID := middleware.GetRequestID(r.Context())
//
// Rate limiting uses a token bucket per caller, keyed by user ID when
// authenticated and by remote address otherwise, and sets the
// X-RateLimit-* headers on every response.
//
// Idempotency caches the response of POST and PATCH requests that carry
// an Idempotency-Key header. A retry with the same key, body, and caller
// replays the cached response with X-Idempotency-Replayed set, and
// concurrent retries wait for the first execution instead of running the
// handler twice.
package middleware
