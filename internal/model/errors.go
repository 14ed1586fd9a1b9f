package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode is a stable machine-readable code carried alongside the HTTP
// status. Codes are grouped by the thousand: 1xxx authentication, 2xxx
// authorization, 3xxx resources, 4xxx validation, 5xxx internal.
type ErrorCode int

const (
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeTokenExpired ErrorCode = 1002
	ErrCodeTokenInvalid ErrorCode = 1003
	ErrCodeLoginFailed  ErrorCode = 1004

	ErrCodeForbidden ErrorCode = 2001

	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeAlreadyExists ErrorCode = 3002
	ErrCodeConflict      ErrorCode = 3003

	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002

	ErrCodeInternal ErrorCode = 5001
	ErrCodeDatabase ErrorCode = 5002
)

// errorTypeBase prefixes the RFC 9457 "type" URI for every problem kind.
const errorTypeBase = "https://atrium-api.forgo.software/errors/"

// ProblemDetails is an RFC 9457 problem document. Code and Conflict are
// extension members.
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`

	Code     ErrorCode    `json:"code,omitempty"`
	Conflict *Reservation `json:"conflict,omitempty"` // set on booking overlap rejections
}

// FieldError pins a validation message to the field that caused it
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON serializes the problem document with the problem+json media type
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(slug, title string, status int, detail string, code ErrorCode) *ProblemDetails {
	return &ProblemDetails{
		Type:   errorTypeBase + slug,
		Title:  title,
		Status: status,
		Detail: detail,
		Code:   code,
	}
}

func NewUnauthorizedError(detail string) *ProblemDetails {
	return newProblem("unauthorized", "Unauthorized", http.StatusUnauthorized, detail, ErrCodeUnauthorized)
}

func NewForbiddenError(detail string) *ProblemDetails {
	return newProblem("forbidden", "Forbidden", http.StatusForbidden, detail, ErrCodeForbidden)
}

func NewNotFoundError(resource string) *ProblemDetails {
	return newProblem("not-found", "Not Found", http.StatusNotFound,
		fmt.Sprintf("%s not found", resource), ErrCodeNotFound)
}

func NewConflictError(detail string) *ProblemDetails {
	return newProblem("conflict", "Conflict", http.StatusConflict, detail, ErrCodeConflict)
}

func NewBadRequestError(detail string) *ProblemDetails {
	return newProblem("bad-request", "Bad Request", http.StatusBadRequest, detail, ErrCodeInvalidInput)
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return newProblem("internal", "Internal Server Error", http.StatusInternalServerError, detail, ErrCodeInternal)
}

// NewValidationError summarizes the first field failure in the detail text
// and attaches the full list for clients that render per-field messages.
func NewValidationError(errs []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errs) > 0 {
		detail = fmt.Sprintf("%s: %s", errs[0].Field, errs[0].Message)
		if extra := len(errs) - 1; extra > 0 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, extra)
		}
	}
	p := newProblem("validation", "Validation Error", http.StatusUnprocessableEntity, detail, ErrCodeValidation)
	p.Errors = errs
	return p
}

// NewOverlapError builds the 409 for a booking that collides with an
// existing reservation, including the offending reservation so clients
// can show what is in the way.
func NewOverlapError(conflict *Reservation) *ProblemDetails {
	detail := "The requested time window overlaps an existing reservation"
	if conflict != nil {
		detail = fmt.Sprintf("The requested time window overlaps %q (%s to %s)",
			conflict.Title,
			conflict.StartTime.Format("15:04"),
			conflict.EndTime.Format("15:04"))
	}
	p := newProblem("reservation-overlap", "Reservation Conflict", http.StatusConflict, detail, ErrCodeConflict)
	p.Conflict = conflict
	return p
}

func NewRateLimitError(retryAfter int) *ProblemDetails {
	p := newProblem("rate-limited", "Too Many Requests", http.StatusTooManyRequests,
		fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter), 0)
	return p
}
