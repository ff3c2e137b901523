package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/data-ashita/monitor-dash/internal/models"
)

// LogStore implements store.LogStore using PostgreSQL. All operations are
// read-only; the task_logs table has append-only semantics.
type LogStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// ListSince retrieves records with timestamp >= cutoff, newest first.
func (s *LogStore) ListSince(ctx context.Context, cutoff time.Time, limit int) ([]models.LogRecord, error) {
	query := `
		SELECT id, timestamp, task_name, level, message, run_source, details, metadata
		FROM task_logs
		WHERE timestamp >= $1
		ORDER BY timestamp DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying task logs: %w", err)
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

// CountSince returns the total number of records in the window.
func (s *LogStore) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM task_logs WHERE timestamp >= $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, cutoff.UTC()).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting task logs: %w", err)
	}

	return count, nil
}

// rowScanner abstracts sql.Rows for scanning a single row.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one log record row. Nullable text columns scan through
// sql.NullString; one sparse row must not abort the whole fetch.
func (s *LogStore) scanRecord(row rowScanner) (models.LogRecord, error) {
	var (
		rec       models.LogRecord
		message   sql.NullString
		runSource sql.NullString
		details   []byte
		metadata  []byte
	)

	err := row.Scan(
		&rec.ID,
		&rec.Timestamp,
		&rec.TaskName,
		&rec.Level,
		&message,
		&runSource,
		&details,
		&metadata,
	)
	if err != nil {
		return models.LogRecord{}, fmt.Errorf("scanning log row: %w", err)
	}

	rec.Message = message.String
	rec.RunSource = runSource.String

	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.Details); err != nil {
			// A malformed payload loses its duration stats but must not
			// drop the record from the other aggregates.
			s.logger.Warn("malformed details payload", "id", rec.ID, "error", err)
			rec.Details = nil
		}
	}
	if len(metadata) > 0 {
		rec.Metadata = json.RawMessage(metadata)
	}

	return rec, nil
}

// scanRecords scans multiple log record rows.
func (s *LogStore) scanRecords(rows *sql.Rows) ([]models.LogRecord, error) {
	var records []models.LogRecord

	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log rows: %w", err)
	}

	return records, nil
}
