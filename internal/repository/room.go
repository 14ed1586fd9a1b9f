package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/atrium/api/internal/database"
	"github.com/forgo/atrium/api/internal/model"
)

// RoomRepository handles meeting room data access
type RoomRepository struct {
	db database.Database
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db database.Database) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
		CREATE room CONTENT {
			name: $name,
			capacity: $capacity,
			facilities: $facilities,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	facilities := room.Facilities
	if facilities == nil {
		facilities = []string{}
	}

	vars := map[string]interface{}{
		"name":       room.Name,
		"capacity":   room.Capacity,
		"facilities": facilities,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: room name already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	room.ID = created.ID
	room.CreatedOn = created.CreatedOn
	room.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*model.Room, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	room, err := parseRoomRow(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return room, nil
}

// List retrieves all rooms ordered by name
func (r *RoomRepository) List(ctx context.Context) ([]*model.Room, error) {
	query := `SELECT * FROM room ORDER BY name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseRoomRows(result), nil
}

// ListByCapacity retrieves all rooms ordered by capacity, largest first.
// Schedule views show the biggest rooms at the top.
func (r *RoomRepository) ListByCapacity(ctx context.Context) ([]*model.Room, error) {
	query := `SELECT * FROM room ORDER BY capacity DESC, name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseRoomRows(result), nil
}

// Update applies a partial update to a room. Only fields present in the
// request are touched.
func (r *RoomRepository) Update(ctx context.Context, id string, req *model.UpdateRoomRequest) error {
	sets := []string{"updated_on = time::now()"}
	vars := map[string]interface{}{"id": id}

	if req.Name != nil {
		sets = append(sets, "name = $name")
		vars["name"] = *req.Name
	}
	if req.Capacity != nil {
		sets = append(sets, "capacity = $capacity")
		vars["capacity"] = *req.Capacity
	}
	if req.Facilities != nil {
		sets = append(sets, "facilities = $facilities")
		vars["facilities"] = req.Facilities
	}

	query := fmt.Sprintf(`UPDATE type::record($id) SET %s`, strings.Join(sets, ", "))

	err := r.db.Execute(ctx, query, vars)
	if err != nil && isUniqueConstraintError(err) {
		return fmt.Errorf("%w: room name already exists", database.ErrDuplicate)
	}
	return err
}

// Delete removes a room and all of its reservations in one transaction
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE reservation WHERE room = type::record($id)`, map[string]interface{}{"id": id})
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": id})

	return batch.Execute(ctx, r.db)
}

func parseRoomRow(result interface{}) (*model.Room, error) {
	data, err := unwrapRow(result)
	if err != nil {
		return nil, err
	}
	return roomFromData(data), nil
}

func parseRoomRows(result []interface{}) []*model.Room {
	rows := unwrapRows(result)
	rooms := make([]*model.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, roomFromData(row))
	}
	return rooms
}

func roomFromData(data map[string]interface{}) *model.Room {
	room := &model.Room{
		ID:         convertSurrealID(data["id"]),
		Name:       getString(data, "name"),
		Capacity:   getInt(data, "capacity"),
		Facilities: getStringSlice(data, "facilities"),
	}
	if t := getTime(data, "created_on"); t != nil {
		room.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		room.UpdatedOn = *t
	}
	return room
}
