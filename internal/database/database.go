package database

import (
	"context"
	"errors"
)

// Sentinel errors returned by Database implementations.
var (
	// ErrNotFound: the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate: a unique constraint was violated, such as registering
	// an email that is already taken.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConflict: an in-transaction constraint rejected the write, such as
	// an overlapping reservation detected at insert time.
	ErrConflict = errors.New("conflicting record")

	// ErrConnection: the database could not be reached.
	ErrConnection = errors.New("database connection error")

	// ErrQuery: the query itself failed (syntax error, bad reference).
	ErrQuery = errors.New("query error")
)

// Database is the storage contract the repositories depend on
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query runs a statement expected to yield zero or more records
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne runs a statement expected to yield exactly one record and
	// returns ErrNotFound when it yields none
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a mutation and discards any results
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds connection settings for SurrealDB
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
