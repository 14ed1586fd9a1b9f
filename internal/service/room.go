package service

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/atrium/api/internal/database"
	"github.com/forgo/atrium/api/internal/model"
)

// RoomRepository defines the interface for room storage
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context) ([]*model.Room, error)
	ListByCapacity(ctx context.Context) ([]*model.Room, error)
	Update(ctx context.Context, id string, req *model.UpdateRoomRequest) error
	Delete(ctx context.Context, id string) error
}

// RoomService handles meeting room management
type RoomService struct {
	roomRepo RoomRepository
}

// RoomServiceConfig holds configuration for the room service
type RoomServiceConfig struct {
	RoomRepo RoomRepository
}

// NewRoomService creates a new room service
func NewRoomService(cfg RoomServiceConfig) *RoomService {
	return &RoomService{roomRepo: cfg.RoomRepo}
}

// CreateRoom adds a new bookable room
func (s *RoomService) CreateRoom(ctx context.Context, req *model.CreateRoomRequest) (*model.Room, error) {
	room := &model.Room{
		Name:       strings.TrimSpace(req.Name),
		Capacity:   req.Capacity,
		Facilities: normalizeFacilities(req.Facilities),
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrRoomNameExists
		}
		return nil, err
	}

	return room, nil
}

// GetRoom retrieves a room by ID
func (s *RoomService) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// ListRooms returns all rooms ordered by name
func (s *RoomService) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return s.roomRepo.List(ctx)
}

// UpdateRoom applies a partial update to a room
func (s *RoomService) UpdateRoom(ctx context.Context, id string, req *model.UpdateRoomRequest) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if req.Facilities != nil {
		req.Facilities = normalizeFacilities(req.Facilities)
	}

	if err := s.roomRepo.Update(ctx, id, req); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrRoomNameExists
		}
		return nil, err
	}

	return s.roomRepo.GetByID(ctx, id)
}

// DeleteRoom removes a room along with its reservations
func (s *RoomService) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}

	return s.roomRepo.Delete(ctx, id)
}

// normalizeFacilities trims entries and drops empties, preserving order
func normalizeFacilities(raw []string) []string {
	facilities := make([]string, 0, len(raw))
	for _, f := range raw {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			facilities = append(facilities, trimmed)
		}
	}
	return facilities
}
