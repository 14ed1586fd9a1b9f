package handler

import (
	"net/http"

	"github.com/forgo/atrium/api/internal/model"
	"github.com/forgo/atrium/api/internal/service"
)

// RoomHandler handles room catalog endpoints. Reads are open to any
// authenticated user; writes go through AdminAuth.
type RoomHandler struct {
	roomService        *service.RoomService
	reservationService *service.ReservationService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService, reservationService *service.ReservationService) *RoomHandler {
	return &RoomHandler{
		roomService:        roomService,
		reservationService: reservationService,
	}
}

// List handles GET /v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, rooms, len(rooms), map[string]string{
		"self": "/v1/rooms",
	})
}

// Get handles GET /v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomService.GetRoom(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, room, map[string]string{
		"reservations": "/v1/rooms/" + room.ID + "/reservations",
	})
}

// Create handles POST /v1/rooms (admin only)
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, room, map[string]string{
		"self": "/v1/rooms/" + room.ID,
	})
}

// Update handles PATCH /v1/rooms/{id} (admin only)
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateRoomRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	room, err := h.roomService.UpdateRoom(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, room, map[string]string{
		"self": "/v1/rooms/" + room.ID,
	})
}

// Delete handles DELETE /v1/rooms/{id} (admin only).
// Deleting a room also removes its reservations.
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.roomService.DeleteRoom(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Reservations handles GET /v1/rooms/{id}/reservations?date=YYYY-MM-DD
func (h *RoomHandler) Reservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		WriteError(w, model.NewBadRequestError("date query parameter is required"))
		return
	}

	reservations, err := h.reservationService.ListRoomDay(r.Context(), r.PathValue("id"), date)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, reservations, len(reservations), nil)
}
