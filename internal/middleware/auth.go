package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/forgo/atrium/api/internal/model"
	"github.com/forgo/atrium/api/pkg/jwt"
)

// AuthService defines the interface for token validation
type AuthService interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// ClaimsKey is the context key for JWT claims
const ClaimsKey contextKey = "claims"

// UserEmailKey is the context key for user email
const UserEmailKey contextKey = "userEmail"

// Auth returns a middleware that validates JWT tokens
func Auth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(w, r, authService)
			if !ok {
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// AdminAuth returns a middleware that validates JWT tokens and requires
// the admin role claim. Non-admins get 403.
func AdminAuth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(w, r, authService)
			if !ok {
				return
			}

			if !claims.IsAdmin() {
				model.NewForbiddenError("admin role required").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// authenticate extracts and validates the Bearer token, writing the
// unauthorized response itself on failure.
func authenticate(w http.ResponseWriter, r *http.Request, authService AuthService) (*jwt.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
		return nil, false
	}

	claims, err := authService.ValidateAccessToken(parts[1])
	if err != nil {
		switch err {
		case jwt.ErrTokenExpired:
			model.NewUnauthorizedError("token expired").WriteJSON(w)
		case jwt.ErrInvalidSignature:
			model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
		default:
			model.NewUnauthorizedError("invalid token").WriteJSON(w)
		}
		return nil, false
	}

	return claims, true
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserEmail extracts the user email from context
func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
