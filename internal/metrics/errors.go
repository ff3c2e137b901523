package metrics

import (
	"sort"

	"github.com/data-ashita/monitor-dash/internal/models"
)

// RecentErrorCount is the number of error-level records shown in detail on
// the dashboard.
const RecentErrorCount = 5

// RecentErrors returns at most n ERROR/CRITICAL records, newest first.
func RecentErrors(records []models.LogRecord, n int) []models.LogRecord {
	errs := make([]models.LogRecord, 0, n)
	for _, r := range records {
		if r.Level.IsFailure() {
			errs = append(errs, r)
		}
	}

	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Timestamp.After(errs[j].Timestamp)
	})

	if n >= 0 && len(errs) > n {
		errs = errs[:n]
	}

	return errs
}

// ScriptErrorCount ranks one script by its error-level record count.
type ScriptErrorCount struct {
	TaskName string `json:"task_name"`
	Count    int    `json:"count"`
}

// ErrorRanking groups ERROR/CRITICAL records by task name, descending by
// count. Ties keep first-seen input order.
func ErrorRanking(records []models.LogRecord) []ScriptErrorCount {
	byName := make(map[string]int)
	var order []string

	for _, r := range records {
		if !r.Level.IsFailure() {
			continue
		}
		if _, ok := byName[r.TaskName]; !ok {
			order = append(order, r.TaskName)
		}
		byName[r.TaskName]++
	}

	ranking := make([]ScriptErrorCount, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, ScriptErrorCount{TaskName: name, Count: byName[name]})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	return ranking
}
