package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// ============================================================================
// Error() Interface Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "Room not found",
	}

	errMsg := pd.Error()

	if !strings.Contains(errMsg, "404") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "Not Found") {
		t.Errorf("error message should contain title, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "Room not found") {
		t.Errorf("error message should contain detail, got: %s", errMsg)
	}
}

// ============================================================================
// WriteJSON Tests
// ============================================================================

func TestProblemDetails_WriteJSON_SetsContentType(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("room")
	rr := httptest.NewRecorder()

	pd.WriteJSON(rr)

	contentType := rr.Header().Get("Content-Type")
	if contentType != "application/problem+json" {
		t.Errorf("expected Content-Type 'application/problem+json', got %q", contentType)
	}
}

func TestProblemDetails_WriteJSON_SetsStatusCode(t *testing.T) {
	t.Parallel()

	pd := NewForbiddenError("access denied")
	rr := httptest.NewRecorder()

	pd.WriteJSON(rr)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestNewOverlapError_IncludesConflict(t *testing.T) {
	t.Parallel()

	conflict := &Reservation{
		ID:        "reservation:abc",
		Title:     "All hands",
		StartTime: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
	}

	pd := NewOverlapError(conflict)

	if pd.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", pd.Status)
	}
	if pd.Conflict == nil || pd.Conflict.ID != "reservation:abc" {
		t.Errorf("expected conflicting reservation in problem, got %+v", pd.Conflict)
	}
	if !strings.Contains(pd.Detail, "All hands") {
		t.Errorf("expected detail to name the conflicting meeting, got %q", pd.Detail)
	}

	rr := httptest.NewRecorder()
	pd.WriteJSON(rr)

	var decoded map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode problem JSON: %v", err)
	}
	if _, ok := decoded["conflict"]; !ok {
		t.Error("expected conflict extension field in JSON body")
	}
}

func TestNewOverlapError_NilConflict(t *testing.T) {
	t.Parallel()

	pd := NewOverlapError(nil)

	if pd.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", pd.Status)
	}
	if pd.Detail == "" {
		t.Error("expected generic detail when no conflict is attached")
	}
}

func TestNewValidationError_SummarizesFirstField(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "end_time", Message: "end_time must be an RFC 3339 timestamp"},
		{Field: "title", Message: "title is required"},
	})

	if pd.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", pd.Status)
	}
	if !strings.Contains(pd.Detail, "end_time") {
		t.Errorf("expected detail to mention first failing field, got %q", pd.Detail)
	}
	if !strings.Contains(pd.Detail, "1 more") {
		t.Errorf("expected detail to count remaining errors, got %q", pd.Detail)
	}
	if len(pd.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(pd.Errors))
	}
}
