package handler

import (
	"net/http"
	"time"

	"github.com/forgo/atrium/api/internal/middleware"
	"github.com/forgo/atrium/api/internal/model"
	"github.com/forgo/atrium/api/internal/service"
)

// ReservationHandler handles booking endpoints
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// Create handles POST /v1/reservations
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateReservationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	reservation, err := h.reservationService.CreateReservation(r.Context(), userID, time.Now(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, reservation, map[string]string{
		"self": "/v1/reservations/" + reservation.ID,
		"room": "/v1/rooms/" + reservation.RoomID,
	})
}

// Get handles GET /v1/reservations/{id}
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.reservationService.GetReservation(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, reservation, map[string]string{
		"room": "/v1/rooms/" + reservation.RoomID,
	})
}

// Delete handles DELETE /v1/reservations/{id}.
// Only the booker may cancel; everyone else sees a 404.
func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.reservationService.DeleteReservation(r.Context(), userID, r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Mine handles GET /v1/profile/reservations
func (h *ReservationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	reservations, err := h.reservationService.ListUserReservations(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, reservations, len(reservations), map[string]string{
		"self": "/v1/profile/reservations",
	})
}
