package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB implements the Database interface over a SurrealDB
// websocket connection
type SurrealDB struct {
	conn *surrealdb.DB
	cfg  Config
}

// NewSurrealDB creates an unconnected SurrealDB instance. Call Connect
// before issuing queries.
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{cfg: cfg}
}

// Connect dials the server, signs in, and selects the configured
// namespace and database
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.cfg.Host, s.cfg.Port)

	conn, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if _, err := conn.SignIn(ctx, &surrealdb.Auth{
		Username: s.cfg.User,
		Password: s.cfg.Password,
	}); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := conn.Use(ctx, s.cfg.Namespace, s.cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.conn = conn
	return nil
}

// Close releases the connection. Safe to call on an instance that
// never connected.
func (s *SurrealDB) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close(context.Background())
}

// Ping verifies the connection is alive
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.conn == nil {
		return ErrConnection
	}
	if _, err := s.conn.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a SurrealQL query and returns one entry per statement,
// each a map with "status" and "result" keys. A statement that failed
// with a THROW "conflict:..." maps to ErrConflict; any other failure
// maps to ErrQuery.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.conn == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.conn, query, vars)
	if err != nil {
		return nil, classifyQueryError(err.Error(), err)
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error == nil {
				return nil, ErrQuery
			}
			return nil, classifyQueryError(r.Error.Message, nil)
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne executes a query and unwraps the first record of the first
// statement's result. Returns ErrNotFound when nothing matched.
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return unwrapFirst(results[0])
}

// Execute runs a query, discarding results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// unwrapFirst peels the {status, result} envelope produced by Query and
// picks the first record when the result is an array. Scalar results
// (counts, booleans) pass through unchanged.
func unwrapFirst(entry interface{}) (interface{}, error) {
	resp, ok := entry.(map[string]interface{})
	if !ok {
		return entry, nil
	}
	if status, ok := resp["status"].(string); !ok || status != "OK" {
		return entry, nil
	}

	records, ok := resp["result"].([]interface{})
	if !ok {
		return resp["result"], nil
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// classifyQueryError maps a SurrealDB error message onto the package
// sentinels. THROW "conflict:..." inside an atomic batch is the signal
// for a constraint rejection.
func classifyQueryError(msg string, cause error) error {
	if strings.Contains(msg, "conflict:") {
		if cause != nil {
			return fmt.Errorf("%w: %v", ErrConflict, cause)
		}
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	if cause != nil {
		return fmt.Errorf("%w: %v", ErrQuery, cause)
	}
	return fmt.Errorf("%w: %s", ErrQuery, msg)
}
