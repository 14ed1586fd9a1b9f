// Package handler implements the HTTP endpoints of the Atrium API.
//
// Handlers are grouped by feature area: auth, rooms, reservations, and the
// schedule grid. Each handler struct takes its services in the constructor
// and writes responses through the helpers in response.go, where WriteData
// and WriteCollection wrap payloads in the standard envelope and WriteError
// emits RFC 9457 problem documents. Service errors translate to problems
// through MapServiceError in error_mapper.go.
//
// A booking that collides with an existing reservation returns 409 with
// the blocking reservation embedded in the problem body, so clients can
// render what is in the way.
//
// Authentication is handled upstream by the middleware package; handlers
// read the caller's identity with middleware.GetUserID(r.Context()). Room
// management endpoints are additionally gated on the admin role.
package handler
