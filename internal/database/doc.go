// Package database provides SurrealDB connectivity for the Atrium API.
//
// The Database interface hides SurrealDB specifics from the repository
// layer. Three query shapes cover the workload: Query for lists, QueryOne
// for single-record lookups (ErrNotFound when empty), and Execute for
// mutations whose results are discarded.
//
// # Connecting
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    User:      "root",
//	    Password:  "secret",
//	    Namespace: "atrium",
//	    Database:  "production",
//	})
//	if err := db.Connect(ctx); err != nil {
//	    // handle
//	}
//	defer db.Close()
//
// # Errors
//
// Failures surface as sentinel errors; match them with errors.Is:
//
//   - ErrNotFound: record does not exist
//   - ErrDuplicate: unique constraint violation, such as a taken email
//   - ErrConflict: an atomic batch rejected the write via THROW
//   - ErrConnection: the database could not be reached
//   - ErrQuery: the query itself failed
//
// # Atomic Batches
//
// AtomicBatch groups statements into a single BEGIN TRANSACTION /
// COMMIT TRANSACTION query, so they commit or fail as a unit. Statements
// are buffered client-side until Execute, so there is no isolation between
// Add calls. Checks that must hold atomically with a mutation, like the
// reservation overlap re-check, are written into the batch itself as
// IF / THROW statements.
package database
