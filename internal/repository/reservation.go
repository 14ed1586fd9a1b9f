package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/atrium/api/internal/database"
	"github.com/forgo/atrium/api/internal/model"
)

// ReservationRepository handles reservation data access
type ReservationRepository struct {
	db database.Database
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db database.Database) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a reservation, re-checking for overlapping bookings in
// the same transaction. The service validates against a snapshot first;
// this guards the window between that read and the write. Returns
// database.ErrConflict when another booking got there first.
func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	attendees := res.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	batch := database.NewAtomicBatch()
	batch.Add(`
		LET $overlapping = (
			SELECT VALUE id FROM reservation
			WHERE room = type::record($room)
			AND start_time < <datetime>$end_time
			AND end_time > <datetime>$start_time
		);
		IF array::len($overlapping) > 0 {
			THROW "conflict: reservation overlap";
		};
		CREATE reservation CONTENT {
			room: type::record($room),
			user: type::record($user),
			title: $title,
			start_time: <datetime>$start_time,
			end_time: <datetime>$end_time,
			attendees: $attendees,
			created_on: time::now()
		}
	`, map[string]interface{}{
		"room":       res.RoomID,
		"user":       res.UserID,
		"title":      res.Title,
		"start_time": res.StartTime.UTC().Format(time.RFC3339),
		"end_time":   res.EndTime.UTC().Format(time.RFC3339),
		"attendees":  attendees,
	})

	query, vars := batch.Build()
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	// The transaction returns one result per statement; the CREATE's
	// row is the one carrying an id.
	for _, row := range unwrapRows(result) {
		if _, ok := row["id"]; !ok {
			continue
		}
		res.ID = convertSurrealID(row["id"])
		if t := getTime(row, "created_on"); t != nil {
			res.CreatedOn = *t
		}
		return nil
	}

	return errors.New("no created reservation returned")
}

// GetByID retrieves a reservation by ID
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	query := `SELECT *, user.name AS booker_name FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	res, err := parseReservationRow(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

// Delete removes a reservation
func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// ListOverlapping returns reservations for a room that intersect the
// half-open window [start, end), ordered by start time.
func (r *ReservationRepository) ListOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*model.Reservation, error) {
	query := `
		SELECT *, user.name AS booker_name FROM reservation
		WHERE room = type::record($room)
		AND start_time < <datetime>$end_time
		AND end_time > <datetime>$start_time
		ORDER BY start_time ASC
	`
	vars := map[string]interface{}{
		"room":       roomID,
		"start_time": start.UTC().Format(time.RFC3339),
		"end_time":   end.UTC().Format(time.RFC3339),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseReservationRows(result), nil
}

// ListForRoomDay returns a room's reservations within [dayStart, dayEnd)
func (r *ReservationRepository) ListForRoomDay(ctx context.Context, roomID string, dayStart, dayEnd time.Time) ([]*model.Reservation, error) {
	return r.ListOverlapping(ctx, roomID, dayStart, dayEnd)
}

// ListByUser returns all of a user's reservations, soonest first
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Reservation, error) {
	query := `
		SELECT *, user.name AS booker_name FROM reservation
		WHERE user = type::record($user)
		ORDER BY start_time ASC
	`
	vars := map[string]interface{}{"user": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseReservationRows(result), nil
}

// ListForDay returns every reservation within [dayStart, dayEnd) across
// all rooms, for the daily schedule view.
func (r *ReservationRepository) ListForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Reservation, error) {
	query := `
		SELECT *, user.name AS booker_name FROM reservation
		WHERE start_time < <datetime>$day_end
		AND end_time > <datetime>$day_start
		ORDER BY start_time ASC
	`
	vars := map[string]interface{}{
		"day_start": dayStart.UTC().Format(time.RFC3339),
		"day_end":   dayEnd.UTC().Format(time.RFC3339),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseReservationRows(result), nil
}

func parseReservationRow(result interface{}) (*model.Reservation, error) {
	data, err := unwrapRow(result)
	if err != nil {
		return nil, err
	}
	return reservationFromData(data), nil
}

func parseReservationRows(result []interface{}) []*model.Reservation {
	rows := unwrapRows(result)
	reservations := make([]*model.Reservation, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, reservationFromData(row))
	}
	return reservations
}

func reservationFromData(data map[string]interface{}) *model.Reservation {
	res := &model.Reservation{
		ID:         convertSurrealID(data["id"]),
		RoomID:     convertSurrealID(data["room"]),
		UserID:     convertSurrealID(data["user"]),
		Title:      getString(data, "title"),
		Attendees:  getStringSlice(data, "attendees"),
		BookerName: getString(data, "booker_name"),
	}
	if t := getTime(data, "start_time"); t != nil {
		res.StartTime = *t
	}
	if t := getTime(data, "end_time"); t != nil {
		res.EndTime = *t
	}
	if t := getTime(data, "created_on"); t != nil {
		res.CreatedOn = *t
	}
	return res
}
