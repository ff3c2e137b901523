// Package metrics derives ephemeral aggregates from a fetched set of log
// records. Every function is pure and total: any input, including the empty
// slice, yields a zero-valued or empty aggregate, never an error.
package metrics

import (
	"sort"
	"time"

	"github.com/data-ashita/monitor-dash/internal/models"
)

// Overview holds the headline counters for the current window.
type Overview struct {
	Total           int     `json:"total"`
	Success         int     `json:"success"`
	Failure         int     `json:"failure"`
	SuccessRate     float64 `json:"success_rate"`
	DistinctScripts int     `json:"distinct_scripts"`
}

// ComputeOverview counts successes and failures across the whole window.
// Levels outside {INFO, ERROR, CRITICAL} count toward the total only.
func ComputeOverview(records []models.LogRecord) Overview {
	o := Overview{Total: len(records)}

	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Level.IsSuccess() {
			o.Success++
		} else if r.Level.IsFailure() {
			o.Failure++
		}
		seen[r.TaskName] = struct{}{}
	}
	o.DistinctScripts = len(seen)

	if o.Total > 0 {
		o.SuccessRate = float64(o.Success) / float64(o.Total)
	}

	return o
}

// DayBucket is one calendar date of the daily trend.
type DayBucket struct {
	Date    string `json:"date"` // YYYY-MM-DD, UTC
	Total   int    `json:"total"`
	Success int    `json:"success"`
	Failure int    `json:"failure"`
}

const dateLayout = "2006-01-02"

// DailyTrend groups records by calendar date (UTC), ascending. Dates between
// the earliest and latest observed dates with no records are zero-filled so
// the trend chart stays continuous.
func DailyTrend(records []models.LogRecord) []DayBucket {
	if len(records) == 0 {
		return []DayBucket{}
	}

	byDate := make(map[string]*DayBucket)
	var first, last time.Time
	for _, r := range records {
		day := r.Timestamp.UTC().Truncate(24 * time.Hour)
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}

		key := day.Format(dateLayout)
		b, ok := byDate[key]
		if !ok {
			b = &DayBucket{Date: key}
			byDate[key] = b
		}
		b.Total++
		if r.Level.IsSuccess() {
			b.Success++
		} else if r.Level.IsFailure() {
			b.Failure++
		}
	}

	var trend []DayBucket
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		if b, ok := byDate[key]; ok {
			trend = append(trend, *b)
		} else {
			trend = append(trend, DayBucket{Date: key})
		}
	}

	return trend
}

// ScriptStat summarizes one script's runs within the window.
type ScriptStat struct {
	TaskName    string  `json:"task_name"`
	Total       int     `json:"total"`
	Success     int     `json:"success"`
	Failure     int     `json:"failure"`
	SuccessRate float64 `json:"success_rate"`
}

// ScriptStats groups records by task name, descending by total run count.
// Ties keep first-seen input order.
func ScriptStats(records []models.LogRecord) []ScriptStat {
	byName := make(map[string]*ScriptStat)
	var order []string

	for _, r := range records {
		s, ok := byName[r.TaskName]
		if !ok {
			s = &ScriptStat{TaskName: r.TaskName}
			byName[r.TaskName] = s
			order = append(order, r.TaskName)
		}
		s.Total++
		if r.Level.IsSuccess() {
			s.Success++
		} else if r.Level.IsFailure() {
			s.Failure++
		}
	}

	stats := make([]ScriptStat, 0, len(order))
	for _, name := range order {
		s := byName[name]
		if s.Total > 0 {
			s.SuccessRate = float64(s.Success) / float64(s.Total)
		}
		stats = append(stats, *s)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})

	return stats
}

// SourceCount summarizes runs per execution environment.
type SourceCount struct {
	RunSource string `json:"run_source"`
	Total     int    `json:"total"`
	Success   int    `json:"success"`
	Failure   int    `json:"failure"`
}

// SourceScriptCount is one cell of the run-source x task-name cross-tab.
type SourceScriptCount struct {
	RunSource string `json:"run_source"`
	TaskName  string `json:"task_name"`
	Count     int    `json:"count"`
}

// SourceBreakdown groups records by run source, and cross-tabulates run
// source with task name. Both listings keep first-seen input order for the
// source dimension; totals break ties within the overall listing.
func SourceBreakdown(records []models.LogRecord) ([]SourceCount, []SourceScriptCount) {
	bySource := make(map[string]*SourceCount)
	byCell := make(map[[2]string]*SourceScriptCount)
	var sourceOrder []string
	var cellOrder [][2]string

	for _, r := range records {
		s, ok := bySource[r.RunSource]
		if !ok {
			s = &SourceCount{RunSource: r.RunSource}
			bySource[r.RunSource] = s
			sourceOrder = append(sourceOrder, r.RunSource)
		}
		s.Total++
		if r.Level.IsSuccess() {
			s.Success++
		} else if r.Level.IsFailure() {
			s.Failure++
		}

		key := [2]string{r.RunSource, r.TaskName}
		c, ok := byCell[key]
		if !ok {
			c = &SourceScriptCount{RunSource: r.RunSource, TaskName: r.TaskName}
			byCell[key] = c
			cellOrder = append(cellOrder, key)
		}
		c.Count++
	}

	sources := make([]SourceCount, 0, len(sourceOrder))
	for _, src := range sourceOrder {
		sources = append(sources, *bySource[src])
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Total > sources[j].Total
	})

	cells := make([]SourceScriptCount, 0, len(cellOrder))
	for _, key := range cellOrder {
		cells = append(cells, *byCell[key])
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Count > cells[j].Count
	})

	return sources, cells
}

// LatestRuns returns the most recent record per task name, newest first.
func LatestRuns(records []models.LogRecord) []models.LogRecord {
	latest := make(map[string]models.LogRecord)
	for _, r := range records {
		if cur, ok := latest[r.TaskName]; !ok || r.Timestamp.After(cur.Timestamp) {
			latest[r.TaskName] = r
		}
	}

	runs := make([]models.LogRecord, 0, len(latest))
	for _, r := range latest {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].TaskName < runs[j].TaskName
		}
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs
}

// Alert summarizes failed runs for the dashboard banner.
type Alert struct {
	Count   int      `json:"count"`
	Scripts []string `json:"scripts"`
}

// FailureAlert counts ERROR/CRITICAL records and names the affected scripts
// in first-seen order. A zero count means all tasks ran successfully.
func FailureAlert(records []models.LogRecord) Alert {
	a := Alert{Scripts: []string{}}
	seen := make(map[string]struct{})

	for _, r := range records {
		if !r.Level.IsFailure() {
			continue
		}
		a.Count++
		if _, ok := seen[r.TaskName]; !ok {
			seen[r.TaskName] = struct{}{}
			a.Scripts = append(a.Scripts, r.TaskName)
		}
	}

	return a
}
