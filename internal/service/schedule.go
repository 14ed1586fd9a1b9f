package service

import (
	"context"

	"github.com/forgo/atrium/api/internal/model"
)

// ScheduleService assembles the daily overview of all rooms
type ScheduleService struct {
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
}

// ScheduleServiceConfig holds configuration for the schedule service
type ScheduleServiceConfig struct {
	RoomRepo        RoomRepository
	ReservationRepo ReservationRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(cfg ScheduleServiceConfig) *ScheduleService {
	return &ScheduleService{
		roomRepo:        cfg.RoomRepo,
		reservationRepo: cfg.ReservationRepo,
	}
}

// DaySchedule returns every room with its bookings for one calendar
// day, largest rooms first. Rooms with no bookings appear with an empty
// reservation list so the grid renders every column.
func (s *ScheduleService) DaySchedule(ctx context.Context, date string) ([]*model.RoomSchedule, error) {
	dayStart, dayEnd, err := parseDay(date)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.ListByCapacity(ctx)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.ListForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[string][]*model.Reservation, len(rooms))
	for _, r := range reservations {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}

	schedules := make([]*model.RoomSchedule, 0, len(rooms))
	for _, room := range rooms {
		entries := byRoom[room.ID]
		if entries == nil {
			entries = []*model.Reservation{}
		}
		schedules = append(schedules, &model.RoomSchedule{
			Room:         room,
			Reservations: entries,
		})
	}

	return schedules, nil
}
