// Package store provides database access interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/data-ashita/monitor-dash/internal/models"
)

// LogStore defines read-only operations over the task_logs table.
type LogStore interface {
	// ListSince retrieves records with timestamp >= cutoff, newest first,
	// capped at limit rows. Rows beyond the cap are silently excluded
	// oldest-first.
	ListSince(ctx context.Context, cutoff time.Time, limit int) ([]models.LogRecord, error)
	// CountSince returns the total number of records in the window,
	// regardless of the row cap.
	CountSince(ctx context.Context, cutoff time.Time) (int, error)
}

// Store is the main interface for database operations.
type Store interface {
	// Logs returns the LogStore for log record operations.
	Logs() LogStore

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
