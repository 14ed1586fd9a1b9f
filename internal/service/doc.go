// Package service holds the business logic for the Atrium API.
//
// Services sit between the HTTP handlers and the repositories. Each one
// takes its dependencies through a config struct (NewAuthService,
// NewReservationService, and so on) and declares the repository interface
// it needs right next to its own code, so unit tests swap in mocks
// without touching the database package.
//
// Failures come back as the sentinel errors in errors.go; handlers map
// them to problem documents with errors.Is. The one structured error is
// OverlapError, which wraps ErrReservationConflict and carries the
// reservation already occupying the requested window.
//
// The reservation window rules live in validator.go as pure functions.
// ValidateWindow takes the clock and the room's existing bookings as
// arguments, so the same decision logic is exercised identically by the
// booking flow and by tests.
//
//	svc := NewReservationService(ReservationServiceConfig{
//	    ReservationRepo: reservationRepo,
//	    RoomRepo:        roomRepo,
//	})
//	reservation, err := svc.CreateReservation(ctx, userID, time.Now(), req)
package service
