package database

import (
	"context"
	"strconv"
	"strings"
)

// AtomicBatch accumulates statements that must succeed or fail together.
// At Execute time the statements are joined, wrapped in BEGIN TRANSACTION /
// COMMIT TRANSACTION, and sent as a single query. Variables are namespaced
// per statement so two statements may both bind $id without colliding.
//
//	batch := database.NewAtomicBatch()
//	batch.Add("DELETE type::record($id)", map[string]interface{}{"id": roomID})
//	batch.Add("DELETE reservation WHERE room = type::record($id)", map[string]interface{}{"id": roomID})
//	err := batch.Execute(ctx, db)
//
// Statements may use IF / THROW for constraints that must hold atomically
// with a mutation; a THROW whose message starts with "conflict:" surfaces
// as ErrConflict.
type AtomicBatch struct {
	statements []string
	vars       map[string]interface{}
	counter    int
}

// NewAtomicBatch creates an empty batch
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{
		vars: make(map[string]interface{}),
	}
}

// Add appends a statement to the batch, namespacing its variables to avoid
// collisions with other statements.
func (b *AtomicBatch) Add(query string, vars map[string]interface{}) {
	b.counter++
	rewritten := query
	for name, value := range vars {
		namespaced := namespacedVar(b.counter, name)
		rewritten = strings.ReplaceAll(rewritten, "$"+name, "$"+namespaced)
		b.vars[namespaced] = value
	}
	b.statements = append(b.statements, rewritten)
}

// Build returns the full transaction query and its merged variables
func (b *AtomicBatch) Build() (string, map[string]interface{}) {
	if len(b.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range b.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), b.vars
}

// Execute runs the batch atomically. An empty batch is a no-op.
func (b *AtomicBatch) Execute(ctx context.Context, db Database) error {
	query, vars := b.Build()
	if query == "" {
		return nil
	}
	return db.Execute(ctx, query, vars)
}

func namespacedVar(counter int, name string) string {
	return "v" + strconv.Itoa(counter) + "_" + name
}
