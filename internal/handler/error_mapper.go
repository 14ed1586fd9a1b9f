package handler

import (
	"errors"

	"github.com/forgo/atrium/api/internal/model"
	"github.com/forgo/atrium/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Overlap rejections carry the winning reservation, which rides
	// along in the 409 body so clients can show what blocked the slot.
	var overlap *service.OverlapError
	if errors.As(err, &overlap) {
		return model.NewOverlapError(overlap.Conflict)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError("invalid email or password")
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError("invalid or expired refresh token")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrRoomNotFound):
		return model.NewNotFoundError("room")
	case errors.Is(err, service.ErrReservationNotFound):
		return model.NewNotFoundError("reservation")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError("email already registered")
	case errors.Is(err, service.ErrRoomNameExists):
		return model.NewConflictError("room name already in use")
	case errors.Is(err, service.ErrReservationConflict):
		return model.NewOverlapError(nil)

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	case errors.Is(err, service.ErrRoomNameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})

	case errors.Is(err, service.ErrTitleRequired):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidStartTimeFormat):
		return model.NewValidationError([]model.FieldError{{Field: "start_time", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidEndTimeFormat):
		return model.NewValidationError([]model.FieldError{{Field: "end_time", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrStartTimeInPast):
		return model.NewValidationError([]model.FieldError{{Field: "window", Message: err.Error()}})

	// ===== Bad Input → 400 =====
	case errors.Is(err, service.ErrInvalidDate):
		return model.NewBadRequestError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
