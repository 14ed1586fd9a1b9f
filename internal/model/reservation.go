package model

import "time"

// Reservation represents a booking of one room for a contiguous time
// window. Windows are half open: a reservation occupies [StartTime,
// EndTime), so a booking may begin at the exact instant another ends.
type Reservation struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Attendees  []string  `json:"attendees,omitempty"`
	BookerName string    `json:"booker_name,omitempty"` // Denormalized from user for schedule views
	CreatedOn  time.Time `json:"created_on"`
}

// Overlaps reports whether this reservation's window intersects the
// half-open window [start, end).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}

// Constraints
const (
	MaxReservationTitleLength = 200
	MaxAttendees              = 50
)

// QuickEndMinutes are the offered one-tap meeting durations
var QuickEndMinutes = []int{30, 60, 90, 120}

// CreateReservationRequest represents a request to book a room.
// Times are RFC 3339 strings so the handler can reject malformed input
// with a field-level error before the service sees it.
type CreateReservationRequest struct {
	RoomID    string   `json:"room_id"`
	Title     string   `json:"title"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Attendees []string `json:"attendees,omitempty"`
}

// Validate checks a booking request for field-level problems. Time
// ordering and conflicts are the service's job; this only catches
// missing or malformed fields.
func (r *CreateReservationRequest) Validate() []FieldError {
	var errors []FieldError

	if r.RoomID == "" {
		errors = append(errors, FieldError{Field: "room_id", Message: "room_id is required"})
	}
	if r.Title == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxReservationTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title must be 200 characters or less"})
	}
	if r.StartTime == "" {
		errors = append(errors, FieldError{Field: "start_time", Message: "start_time is required"})
	} else if _, err := time.Parse(time.RFC3339, r.StartTime); err != nil {
		errors = append(errors, FieldError{Field: "start_time", Message: "start_time must be an RFC 3339 timestamp"})
	}
	if r.EndTime == "" {
		errors = append(errors, FieldError{Field: "end_time", Message: "end_time is required"})
	} else if _, err := time.Parse(time.RFC3339, r.EndTime); err != nil {
		errors = append(errors, FieldError{Field: "end_time", Message: "end_time must be an RFC 3339 timestamp"})
	}
	if len(r.Attendees) > MaxAttendees {
		errors = append(errors, FieldError{Field: "attendees", Message: "at most 50 attendees are allowed"})
	}

	return errors
}
