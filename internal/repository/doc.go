// Package repository implements SurrealDB data access for the Atrium API.
//
// One repository per entity: rooms, users, reservations, and refresh
// tokens. Each takes the database.Database interface in its constructor,
// which keeps the services testable against mocks. All queries are
// parameterized with $variable bindings; record IDs pass through
// type::record() so untrusted strings never splice into a query.
//
// Row decoding goes through the shared helpers in helpers.go: unwrapRow
// peels the SurrealDB response envelope, convertSurrealID flattens record
// IDs to "table:id" strings, and the get* accessors pull typed fields out
// of the raw map.
//
// Writes that must re-check a constraint in the same transaction, like the
// reservation overlap check, use AtomicBatch with IF / THROW so the check
// and the mutation commit together.
//
//	repo := NewRoomRepository(db)
//	room, err := repo.GetByID(ctx, "room:abc123")
//	if errors.Is(err, database.ErrNotFound) {
//	    // no such room
//	}
package repository
