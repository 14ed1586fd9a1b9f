// Package model holds the domain types for the Atrium API.
//
// Three entities anchor the domain: User (an account with credentials and
// a role), Room (a bookable meeting room with capacity and facilities), and
// Reservation (a booking of one room for a time window on a single day).
// Request and response shapes live beside the entities they carry, as do
// the validation rules: each request type has a Validate method returning
// []FieldError, with limits like MaxRoomNameLength and
// MaxReservationTitleLength defined next to the type they bound.
//
// API errors are RFC 9457 problem documents (ProblemDetails in errors.go)
// with two extension members, a stable numeric Code and, on booking overlap
// rejections, the Conflict reservation that is in the way.
//
// Everything here serializes with json struct tags and is shared by the
// handler, service, and repository layers.
package model
