package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/atrium/api/internal/database"
	"github.com/forgo/atrium/api/internal/model"
)

// ReservationRepository defines the interface for reservation storage
type ReservationRepository interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	Delete(ctx context.Context, id string) error
	ListOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*model.Reservation, error)
	ListForRoomDay(ctx context.Context, roomID string, dayStart, dayEnd time.Time) ([]*model.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Reservation, error)
	ListForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Reservation, error)
}

// OverlapError reports a booking rejected because the window collides
// with an existing reservation. Wraps ErrReservationConflict so callers
// can match with errors.Is.
type OverlapError struct {
	Conflict *model.Reservation
}

func (e *OverlapError) Error() string {
	if e.Conflict != nil {
		return fmt.Sprintf("reservation overlaps %q (%s to %s)",
			e.Conflict.Title,
			e.Conflict.StartTime.Format(time.RFC3339),
			e.Conflict.EndTime.Format(time.RFC3339))
	}
	return ErrReservationConflict.Error()
}

func (e *OverlapError) Unwrap() error {
	return ErrReservationConflict
}

// ReservationService handles booking operations
type ReservationService struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
}

// ReservationServiceConfig holds configuration for the reservation service
type ReservationServiceConfig struct {
	ReservationRepo ReservationRepository
	RoomRepo        RoomRepository
}

// NewReservationService creates a new reservation service
func NewReservationService(cfg ReservationServiceConfig) *ReservationService {
	return &ReservationService{
		reservationRepo: cfg.ReservationRepo,
		roomRepo:        cfg.RoomRepo,
	}
}

// CreateReservation books a room for the requested window. The caller
// supplies now so the past-start rule is applied against a single
// consistent clock reading.
//
// Validation happens twice: once here against a snapshot of the room's
// bookings, and once more inside the store's insert transaction. The
// first pass produces the detailed rejection (including the conflicting
// reservation); the second closes the race where two requests pass the
// snapshot check together.
func (s *ReservationService) CreateReservation(ctx context.Context, userID string, now time.Time, req *model.CreateReservationRequest) (*model.Reservation, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTimeFormat
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, ErrInvalidEndTimeFormat
	}

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	existing, err := s.reservationRepo.ListOverlapping(ctx, room.ID, start, end)
	if err != nil {
		return nil, err
	}

	decision := ValidateWindow(now, start, end, existing)
	if !decision.Accepted {
		switch decision.Reason {
		case RejectInvalidWindow:
			return nil, ErrInvalidTimeRange
		case RejectPastStartTime:
			return nil, ErrStartTimeInPast
		case RejectOverlap:
			return nil, &OverlapError{Conflict: decision.Conflict}
		}
	}

	reservation := &model.Reservation{
		RoomID:    room.ID,
		UserID:    userID,
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Attendees: normalizeAttendees(req.Attendees),
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		if errors.Is(err, database.ErrConflict) {
			// Lost the race; fetch whoever won for the rejection detail
			conflict := s.firstOverlapping(ctx, room.ID, start, end)
			return nil, &OverlapError{Conflict: conflict}
		}
		return nil, err
	}

	return reservation, nil
}

// GetReservation retrieves a reservation by ID
func (s *ReservationService) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

// DeleteReservation removes a booking. Only the booker may cancel;
// anyone else gets not-found so reservation IDs are not probeable.
func (s *ReservationService) DeleteReservation(ctx context.Context, userID, id string) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil || reservation.UserID != userID {
		return ErrReservationNotFound
	}

	return s.reservationRepo.Delete(ctx, id)
}

// ListUserReservations returns all bookings made by a user, soonest first
func (s *ReservationService) ListUserReservations(ctx context.Context, userID string) ([]*model.Reservation, error) {
	return s.reservationRepo.ListByUser(ctx, userID)
}

// ListRoomDay returns a room's bookings for one calendar day.
// The date is a YYYY-MM-DD string; the day is interpreted in UTC.
func (s *ReservationService) ListRoomDay(ctx context.Context, roomID, date string) ([]*model.Reservation, error) {
	dayStart, dayEnd, err := parseDay(date)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	return s.reservationRepo.ListForRoomDay(ctx, room.ID, dayStart, dayEnd)
}

// firstOverlapping returns the earliest booking intersecting the window,
// or nil if the lookup fails. Used only to enrich a conflict rejection.
func (s *ReservationService) firstOverlapping(ctx context.Context, roomID string, start, end time.Time) *model.Reservation {
	overlapping, err := s.reservationRepo.ListOverlapping(ctx, roomID, start, end)
	if err != nil || len(overlapping) == 0 {
		return nil
	}
	return overlapping[0]
}

// normalizeAttendees splits comma-joined entries, trims whitespace, and
// drops empties. Clients may send either one comma-separated string or
// an array of names.
func normalizeAttendees(raw []string) []string {
	var attendees []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if name := strings.TrimSpace(part); name != "" {
				attendees = append(attendees, name)
			}
		}
	}
	return attendees
}

// parseDay converts a YYYY-MM-DD string into the UTC day window [start, end)
func parseDay(date string) (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return day, day.AddDate(0, 0, 1), nil
}
