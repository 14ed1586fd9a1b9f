package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrNameRequired       = errors.New("name is required")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Room Errors =====
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNameExists  = errors.New("a room with this name already exists")
	ErrRoomNameTooLong = errors.New("room name exceeds maximum length")
)

// ===== Reservation Errors =====
var (
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrInvalidTimeRange       = errors.New("end time must be after start time")
	ErrStartTimeInPast        = errors.New("start time is in the past")
	ErrReservationConflict    = errors.New("reservation overlaps an existing booking")
	ErrInvalidStartTimeFormat = errors.New("invalid start_time format")
	ErrInvalidEndTimeFormat   = errors.New("invalid end_time format")
	ErrInvalidDate            = errors.New("invalid date, expected YYYY-MM-DD")
)
