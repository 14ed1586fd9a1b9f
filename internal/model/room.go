package model

import "time"

// Room represents a bookable meeting room
type Room struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	Facilities []string  `json:"facilities,omitempty"` // "projector", "whiteboard", etc.
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// Constraints
const (
	MaxRoomNameLength = 100
	MaxRoomCapacity   = 1000
	MaxFacilities     = 20
)

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	Name       string   `json:"name"`
	Capacity   int      `json:"capacity"`
	Facilities []string `json:"facilities,omitempty"`
}

// UpdateRoomRequest represents a partial update to a room
type UpdateRoomRequest struct {
	Name       *string  `json:"name,omitempty"`
	Capacity   *int     `json:"capacity,omitempty"`
	Facilities []string `json:"facilities,omitempty"`
}

// Validate checks a room creation request for field-level problems
func (r *CreateRoomRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > MaxRoomNameLength {
		errors = append(errors, FieldError{Field: "name", Message: "name must be 100 characters or less"})
	}
	if r.Capacity <= 0 {
		errors = append(errors, FieldError{Field: "capacity", Message: "capacity must be a positive integer"})
	} else if r.Capacity > MaxRoomCapacity {
		errors = append(errors, FieldError{Field: "capacity", Message: "capacity must be 1000 or less"})
	}
	if len(r.Facilities) > MaxFacilities {
		errors = append(errors, FieldError{Field: "facilities", Message: "at most 20 facilities are allowed"})
	}

	return errors
}

// Validate checks a room update request. All fields are optional but
// any present field must be valid.
func (r *UpdateRoomRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil {
		if *r.Name == "" {
			errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
		} else if len(*r.Name) > MaxRoomNameLength {
			errors = append(errors, FieldError{Field: "name", Message: "name must be 100 characters or less"})
		}
	}
	if r.Capacity != nil {
		if *r.Capacity <= 0 {
			errors = append(errors, FieldError{Field: "capacity", Message: "capacity must be a positive integer"})
		} else if *r.Capacity > MaxRoomCapacity {
			errors = append(errors, FieldError{Field: "capacity", Message: "capacity must be 1000 or less"})
		}
	}
	if len(r.Facilities) > MaxFacilities {
		errors = append(errors, FieldError{Field: "facilities", Message: "at most 20 facilities are allowed"})
	}

	return errors
}

// RoomSchedule pairs a room with its reservations for one day
type RoomSchedule struct {
	Room         *Room          `json:"room"`
	Reservations []*Reservation `json:"reservations"`
}
