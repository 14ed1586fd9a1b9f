package service

import (
	"testing"
	"time"

	"github.com/forgo/atrium/api/internal/model"
)

// ============================================================================
// Test Helpers
// ============================================================================

var validatorDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return validatorDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func booking(id string, start, end time.Time) *model.Reservation {
	return &model.Reservation{
		ID:        id,
		RoomID:    "room:1",
		Title:     "existing",
		StartTime: start,
		EndTime:   end,
	}
}

// ============================================================================
// Window Shape Tests
// ============================================================================

func TestValidateWindow_ReversedWindow_Rejected(t *testing.T) {
	t.Parallel()

	d := ValidateWindow(at(8, 0), at(11, 0), at(10, 0), nil)

	if d.Accepted {
		t.Fatal("expected rejection for reversed window")
	}
	if d.Reason != RejectInvalidWindow {
		t.Errorf("expected reason %q, got %q", RejectInvalidWindow, d.Reason)
	}
}

func TestValidateWindow_ZeroLengthWindow_Rejected(t *testing.T) {
	t.Parallel()

	d := ValidateWindow(at(8, 0), at(10, 0), at(10, 0), nil)

	if d.Accepted {
		t.Fatal("expected rejection for zero-length window")
	}
	if d.Reason != RejectInvalidWindow {
		t.Errorf("expected reason %q, got %q", RejectInvalidWindow, d.Reason)
	}
}

func TestValidateWindow_ShapeCheckedBeforeOverlap(t *testing.T) {
	t.Parallel()

	// A reversed window over a busy slot still reports invalid_window
	existing := []*model.Reservation{booking("reservation:a", at(10, 0), at(11, 0))}

	d := ValidateWindow(at(8, 0), at(11, 0), at(10, 0), existing)

	if d.Reason != RejectInvalidWindow {
		t.Errorf("expected reason %q, got %q", RejectInvalidWindow, d.Reason)
	}
	if d.Conflict != nil {
		t.Error("expected no conflict on a shape rejection")
	}
}

// ============================================================================
// Past Start Tests
// ============================================================================

func TestValidateWindow_StartEarlierToday_Rejected(t *testing.T) {
	t.Parallel()

	now := at(12, 0)
	d := ValidateWindow(now, at(9, 0), at(10, 0), nil)

	if d.Accepted {
		t.Fatal("expected rejection for start earlier today")
	}
	if d.Reason != RejectPastStartTime {
		t.Errorf("expected reason %q, got %q", RejectPastStartTime, d.Reason)
	}
}

func TestValidateWindow_StartOnEarlierDay_Accepted(t *testing.T) {
	t.Parallel()

	// The past-start rule only watches today's date; a conflict-free
	// window on an earlier day matches no rejection rule
	now := at(8, 0)
	yesterday := at(9, 0).AddDate(0, 0, -1)

	d := ValidateWindow(now, yesterday, yesterday.Add(time.Hour), nil)

	if !d.Accepted {
		t.Errorf("expected acceptance for a prior-day start, got reason %q", d.Reason)
	}
}

func TestValidateWindow_MorningSlotOnFutureDay_Accepted(t *testing.T) {
	t.Parallel()

	// 09:00 tomorrow is bookable even when it is already afternoon today
	now := at(15, 0)
	start := at(9, 0).AddDate(0, 0, 1)

	d := ValidateWindow(now, start, start.Add(time.Hour), nil)

	if !d.Accepted {
		t.Errorf("expected acceptance, got reason %q", d.Reason)
	}
}

func TestValidateWindow_StartExactlyNow_Accepted(t *testing.T) {
	t.Parallel()

	now := at(9, 0)
	d := ValidateWindow(now, now, now.Add(time.Hour), nil)

	if !d.Accepted {
		t.Errorf("expected acceptance for start == now, got reason %q", d.Reason)
	}
}

// ============================================================================
// Overlap Tests
// ============================================================================

func TestValidateWindow_IdenticalWindow_Rejected(t *testing.T) {
	t.Parallel()

	existing := []*model.Reservation{booking("reservation:a", at(10, 0), at(11, 0))}

	d := ValidateWindow(at(8, 0), at(10, 0), at(11, 0), existing)

	if d.Reason != RejectOverlap {
		t.Errorf("expected reason %q, got %q", RejectOverlap, d.Reason)
	}
	if d.Conflict == nil || d.Conflict.ID != "reservation:a" {
		t.Errorf("expected conflict reservation:a, got %+v", d.Conflict)
	}
}

func TestValidateWindow_PartialOverlap_RejectedBothDirections(t *testing.T) {
	t.Parallel()

	existing := []*model.Reservation{booking("reservation:a", at(10, 0), at(11, 0))}

	// New window straddles the start of the existing booking
	d1 := ValidateWindow(at(8, 0), at(9, 30), at(10, 30), existing)
	if d1.Reason != RejectOverlap {
		t.Errorf("straddle start: expected reason %q, got %q", RejectOverlap, d1.Reason)
	}

	// New window straddles the end of the existing booking
	d2 := ValidateWindow(at(8, 0), at(10, 30), at(11, 30), existing)
	if d2.Reason != RejectOverlap {
		t.Errorf("straddle end: expected reason %q, got %q", RejectOverlap, d2.Reason)
	}
}

func TestValidateWindow_ContainedWindow_Rejected(t *testing.T) {
	t.Parallel()

	existing := []*model.Reservation{booking("reservation:a", at(9, 0), at(12, 0))}

	d := ValidateWindow(at(8, 0), at(10, 0), at(11, 0), existing)

	if d.Reason != RejectOverlap {
		t.Errorf("expected reason %q, got %q", RejectOverlap, d.Reason)
	}
}

func TestValidateWindow_BackToBack_Accepted(t *testing.T) {
	t.Parallel()

	existing := []*model.Reservation{booking("reservation:a", at(10, 0), at(11, 0))}

	// Ending exactly when the existing booking starts
	before := ValidateWindow(at(8, 0), at(9, 0), at(10, 0), existing)
	if !before.Accepted {
		t.Errorf("expected acceptance for window ending at existing start, got %q", before.Reason)
	}

	// Starting exactly when the existing booking ends
	after := ValidateWindow(at(8, 0), at(11, 0), at(12, 0), existing)
	if !after.Accepted {
		t.Errorf("expected acceptance for window starting at existing end, got %q", after.Reason)
	}
}

func TestValidateWindow_OverlapIsSymmetric(t *testing.T) {
	t.Parallel()

	a := booking("reservation:a", at(9, 0), at(10, 30))
	b := booking("reservation:b", at(10, 0), at(11, 0))

	d1 := ValidateWindow(at(8, 0), b.StartTime, b.EndTime, []*model.Reservation{a})
	d2 := ValidateWindow(at(8, 0), a.StartTime, a.EndTime, []*model.Reservation{b})

	if (d1.Reason == RejectOverlap) != (d2.Reason == RejectOverlap) {
		t.Errorf("overlap not symmetric: %q vs %q", d1.Reason, d2.Reason)
	}
}

func TestValidateWindow_ReportsFirstConflict(t *testing.T) {
	t.Parallel()

	existing := []*model.Reservation{
		booking("reservation:a", at(9, 0), at(10, 0)),
		booking("reservation:b", at(10, 0), at(11, 0)),
	}

	// Window crosses both bookings; the first one is reported
	d := ValidateWindow(at(8, 0), at(9, 30), at(10, 30), existing)

	if d.Conflict == nil || d.Conflict.ID != "reservation:a" {
		t.Errorf("expected first conflict reservation:a, got %+v", d.Conflict)
	}
}

// ============================================================================
// Determinism Tests
// ============================================================================

func TestValidateWindow_DeterministicForFixedInputs(t *testing.T) {
	t.Parallel()

	existing := []*model.Reservation{booking("reservation:a", at(10, 0), at(11, 0))}

	first := ValidateWindow(at(8, 0), at(10, 30), at(11, 30), existing)
	for i := 0; i < 5; i++ {
		again := ValidateWindow(at(8, 0), at(10, 30), at(11, 30), existing)
		if again != first {
			t.Fatalf("decision changed between calls: %+v vs %+v", first, again)
		}
	}
}

// ============================================================================
// QuickEnd Tests
// ============================================================================

func TestQuickEnd_OfferedDurations(t *testing.T) {
	t.Parallel()

	start := at(9, 0)
	for _, minutes := range model.QuickEndMinutes {
		end, ok := QuickEnd(start, minutes)
		if !ok {
			t.Errorf("expected %d minutes to be offered", minutes)
			continue
		}
		if want := start.Add(time.Duration(minutes) * time.Minute); !end.Equal(want) {
			t.Errorf("QuickEnd(%d) = %v, want %v", minutes, end, want)
		}
	}
}

func TestQuickEnd_UnofferedDuration_ReturnsFalse(t *testing.T) {
	t.Parallel()

	if _, ok := QuickEnd(at(9, 0), 45); ok {
		t.Error("expected 45 minutes to not be offered")
	}
}
