package metrics

import "github.com/data-ashita/monitor-dash/internal/models"

// Filter narrows a record set by exact-match predicates. Set fields compose
// by logical AND; an unset field matches everything.
type Filter struct {
	TaskName  string
	Level     models.Level
	RunSource string
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return f.TaskName == "" && f.Level == "" && f.RunSource == ""
}

// Matches reports whether the record satisfies every set predicate.
func (f Filter) Matches(r *models.LogRecord) bool {
	if f.TaskName != "" && r.TaskName != f.TaskName {
		return false
	}
	if f.Level != "" && r.Level != f.Level {
		return false
	}
	if f.RunSource != "" && r.RunSource != f.RunSource {
		return false
	}
	return true
}

// Apply returns the records matching the filter, preserving input order.
// The input slice is never mutated.
func (f Filter) Apply(records []models.LogRecord) []models.LogRecord {
	if f.IsZero() {
		return records
	}

	matched := make([]models.LogRecord, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			matched = append(matched, records[i])
		}
	}
	return matched
}
