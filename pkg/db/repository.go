package db

import (
	"fmt"
	"time"
)

// Operation statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Repository handles data access
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Operation represents a row in the operations table: one AI operation run
// against a note.
type Operation struct {
	ID        int64         `json:"id"`
	NoteID    string        `json:"note_id,omitempty"`
	Op        string        `json:"op"`
	Status    string        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// LogOperation appends an operation record
func (r *Repository) LogOperation(op Operation) error {
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	query := `INSERT INTO operations (note_id, op, status, error, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, op.NoteID, op.Op, op.Status, op.Error, op.Duration.Milliseconds(), op.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to log operation: %w", err)
	}
	return nil
}

// ListOperations returns the most recent operations, newest first. An empty
// noteID lists operations for all notes.
func (r *Repository) ListOperations(noteID string, limit int) ([]Operation, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, note_id, op, status, error, duration_ms, created_at FROM operations
		WHERE (? = '' OR note_id = ?) ORDER BY id DESC LIMIT ?`
	rows, err := r.db.Query(query, noteID, noteID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		var ms int64
		if err := rows.Scan(&op.ID, &op.NoteID, &op.Op, &op.Status, &op.Error, &ms, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		op.Duration = time.Duration(ms) * time.Millisecond
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return ops, nil
}
