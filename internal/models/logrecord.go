// Package models defines the core data types for the dashboard.
package models

import (
	"encoding/json"
	"time"
)

// Level classifies the outcome of a script execution. The set is open-ended;
// only the three constants below are treated specially by the aggregator.
type Level string

const (
	// LevelInfo marks a successful execution.
	LevelInfo Level = "INFO"
	// LevelError marks a failed execution.
	LevelError Level = "ERROR"
	// LevelCritical marks a failed execution that needs attention.
	LevelCritical Level = "CRITICAL"
)

// IsSuccess reports whether the level counts as a successful run.
func (l Level) IsSuccess() bool {
	return l == LevelInfo
}

// IsFailure reports whether the level counts as a failed run.
func (l Level) IsFailure() bool {
	return l == LevelError || l == LevelCritical
}

// Run sources recognized by the dashboard filters. The column is open-ended;
// unknown values still count toward every aggregate.
const (
	RunSourceLocal  = "local"
	RunSourceGitHub = "github"
)

// LogRecord is one append-only row of the task_logs table describing a script
// execution outcome. Records are never mutated after creation and the
// dashboard never writes them back.
type LogRecord struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	TaskName  string          `json:"task_name"`
	Level     Level           `json:"level"`
	Message   string          `json:"message"`
	RunSource string          `json:"run_source"`
	Details   map[string]any  `json:"details,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"` // legacy, not interpreted
}

// detailsDurationKey is the Details key carrying the execution duration.
const detailsDurationKey = "duration_seconds"

// DurationSeconds extracts the execution duration from the Details payload.
// It returns false when the payload is absent or carries no numeric duration.
func (r *LogRecord) DurationSeconds() (float64, bool) {
	if r.Details == nil {
		return 0, false
	}
	switch v := r.Details[detailsDurationKey].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
