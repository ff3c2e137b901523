package metrics

import (
	"sort"

	"github.com/data-ashita/monitor-dash/internal/models"
)

// ScriptDuration summarizes execution durations for one script. Samples holds
// the full per-script distribution for box-plot rendering, in input order.
type ScriptDuration struct {
	TaskName string    `json:"task_name"`
	Count    int       `json:"count"`
	Mean     float64   `json:"mean"`
	Max      float64   `json:"max"`
	Samples  []float64 `json:"samples"`
}

// DurationStats aggregates execution durations per script, descending by mean
// duration. Records without a numeric duration in their details payload are
// excluded from this aggregate only; they still count everywhere else.
func DurationStats(records []models.LogRecord) []ScriptDuration {
	byName := make(map[string]*ScriptDuration)
	var order []string

	for i := range records {
		d, ok := records[i].DurationSeconds()
		if !ok {
			continue
		}
		name := records[i].TaskName
		s, ok := byName[name]
		if !ok {
			s = &ScriptDuration{TaskName: name}
			byName[name] = s
			order = append(order, name)
		}
		s.Count++
		s.Samples = append(s.Samples, d)
		if d > s.Max {
			s.Max = d
		}
	}

	stats := make([]ScriptDuration, 0, len(order))
	for _, name := range order {
		s := byName[name]
		var sum float64
		for _, d := range s.Samples {
			sum += d
		}
		s.Mean = sum / float64(s.Count)
		stats = append(stats, *s)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mean > stats[j].Mean
	})

	return stats
}
