package service

import (
	"time"

	"github.com/forgo/atrium/api/internal/model"
)

// RejectReason classifies why a requested booking window was refused
type RejectReason string

const (
	RejectInvalidWindow RejectReason = "invalid_window"  // End does not come after start
	RejectPastStartTime RejectReason = "past_start_time" // Start has already passed
	RejectOverlap       RejectReason = "overlap"         // Window intersects an existing booking
)

// Decision is the outcome of validating a requested booking window
type Decision struct {
	Accepted bool
	Start    time.Time
	End      time.Time
	Reason   RejectReason
	Conflict *model.Reservation // First existing booking in the way, set for RejectOverlap
}

// ValidateWindow decides whether the half-open window [start, end) may
// be booked given the room's existing reservations. The caller supplies
// the clock so the decision is deterministic.
//
// Checks run in order: window shape, past start, overlap. Only the
// first failure is reported. The past-start rule applies only to starts
// on the current calendar day; a start on any other day is never
// rejected for being past.
func ValidateWindow(now, start, end time.Time, existing []*model.Reservation) Decision {
	if !end.After(start) {
		return Decision{Start: start, End: end, Reason: RejectInvalidWindow}
	}

	if startInPast(now, start) {
		return Decision{Start: start, End: end, Reason: RejectPastStartTime}
	}

	for _, r := range existing {
		if r.Overlaps(start, end) {
			return Decision{Start: start, End: end, Reason: RejectOverlap, Conflict: r}
		}
	}

	return Decision{Accepted: true, Start: start, End: end}
}

// QuickEnd computes the end time for one of the offered one-tap
// durations. Returns false if the duration is not offered.
func QuickEnd(start time.Time, minutes int) (time.Time, bool) {
	for _, m := range model.QuickEndMinutes {
		if m == minutes {
			return start.Add(time.Duration(minutes) * time.Minute), true
		}
	}
	return time.Time{}, false
}

// startInPast reports whether start has already passed relative to now.
// The rule is scoped to the current calendar day: only a start on
// today's date is compared against the clock. Starts on any other day
// are left to the overlap check.
func startInPast(now, start time.Time) bool {
	localStart := start.In(now.Location())
	if !truncateToDay(localStart).Equal(truncateToDay(now)) {
		return false
	}
	return localStart.Before(now)
}

// truncateToDay drops the time-of-day component in t's location
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
