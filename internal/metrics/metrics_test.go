package metrics

import (
	"testing"
	"time"

	"github.com/data-ashita/monitor-dash/internal/models"
)

func rec(task string, level models.Level, ts time.Time) models.LogRecord {
	return models.LogRecord{
		TaskName:  task,
		Level:     level,
		Message:   string(level) + " from " + task,
		RunSource: models.RunSourceLocal,
		Timestamp: ts,
	}
}

// TestWorkedExample covers the three-record reference scenario:
// [(A, INFO, t1), (B, ERROR, t2), (A, ERROR, t3)] with t1 < t2 < t3.
func TestWorkedExample(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	records := []models.LogRecord{
		rec("A", models.LevelInfo, t1),
		rec("B", models.LevelError, t2),
		rec("A", models.LevelError, t3),
	}

	o := ComputeOverview(records)
	if o.Total != 3 || o.Success != 1 || o.Failure != 2 {
		t.Fatalf("overview = %+v, want total=3 success=1 failure=2", o)
	}
	if want := 1.0 / 3.0; o.SuccessRate != want {
		t.Errorf("success rate = %v, want %v", o.SuccessRate, want)
	}
	if o.DistinctScripts != 2 {
		t.Errorf("distinct scripts = %d, want 2", o.DistinctScripts)
	}

	stats := ScriptStats(records)
	if len(stats) != 2 {
		t.Fatalf("script stats = %d entries, want 2", len(stats))
	}
	if stats[0].TaskName != "A" || stats[0].Total != 2 || stats[0].Success != 1 || stats[0].Failure != 1 {
		t.Errorf("stats[0] = %+v, want A total=2 success=1 failure=1", stats[0])
	}
	if stats[1].TaskName != "B" || stats[1].Total != 1 || stats[1].Success != 0 || stats[1].Failure != 1 {
		t.Errorf("stats[1] = %+v, want B total=1 success=0 failure=1", stats[1])
	}

	// A and B are tied at one error each; first-seen order breaks the tie,
	// and A appears first in the input.
	ranking := ErrorRanking(records)
	if len(ranking) != 2 {
		t.Fatalf("ranking = %d entries, want 2", len(ranking))
	}
	if ranking[0].TaskName != "A" || ranking[0].Count != 1 {
		t.Errorf("ranking[0] = %+v, want A count=1", ranking[0])
	}
	if ranking[1].TaskName != "B" || ranking[1].Count != 1 {
		t.Errorf("ranking[1] = %+v, want B count=1", ranking[1])
	}
}

func TestDailyTrendBuckets(t *testing.T) {
	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	records := []models.LogRecord{
		rec("A", models.LevelInfo, day1),
		rec("B", models.LevelError, day1.Add(2*time.Hour)),
		rec("A", models.LevelInfo, day2),
	}

	trend := DailyTrend(records)
	if len(trend) != 2 {
		t.Fatalf("trend = %d buckets, want 2", len(trend))
	}
	if trend[0].Date != "2026-08-10" || trend[0].Total != 2 || trend[0].Success != 1 || trend[0].Failure != 1 {
		t.Errorf("trend[0] = %+v", trend[0])
	}
	if trend[1].Date != "2026-08-11" || trend[1].Total != 1 || trend[1].Success != 1 {
		t.Errorf("trend[1] = %+v", trend[1])
	}
}

func TestDailyTrendZeroFillsGaps(t *testing.T) {
	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day3 := day1.AddDate(0, 0, 2)

	trend := DailyTrend([]models.LogRecord{
		rec("A", models.LevelInfo, day1),
		rec("A", models.LevelInfo, day3),
	})

	if len(trend) != 3 {
		t.Fatalf("trend = %d buckets, want 3 (gap zero-filled)", len(trend))
	}
	if trend[1].Date != "2026-08-11" || trend[1].Total != 0 {
		t.Errorf("trend[1] = %+v, want empty 2026-08-11 bucket", trend[1])
	}
}

func TestRecentErrorsCapAndOrder(t *testing.T) {
	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	var records []models.LogRecord
	for i := 0; i < 8; i++ {
		records = append(records, rec("A", models.LevelError, base.Add(time.Duration(i)*time.Minute)))
	}
	records = append(records, rec("A", models.LevelInfo, base.Add(time.Hour)))

	errs := RecentErrors(records, RecentErrorCount)
	if len(errs) != RecentErrorCount {
		t.Fatalf("recent errors = %d, want %d", len(errs), RecentErrorCount)
	}
	for i := 1; i < len(errs); i++ {
		if errs[i].Timestamp.After(errs[i-1].Timestamp) {
			t.Errorf("recent errors not in descending order at %d", i)
		}
	}
	if !errs[0].Timestamp.Equal(base.Add(7 * time.Minute)) {
		t.Errorf("errs[0] at %v, want the newest error record", errs[0].Timestamp)
	}
}

func TestLatestRuns(t *testing.T) {
	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []models.LogRecord{
		rec("A", models.LevelError, base),
		rec("A", models.LevelInfo, base.Add(time.Hour)),
		rec("B", models.LevelInfo, base.Add(30*time.Minute)),
	}

	runs := LatestRuns(records)
	if len(runs) != 2 {
		t.Fatalf("latest runs = %d, want 2", len(runs))
	}
	if runs[0].TaskName != "A" || runs[0].Level != models.LevelInfo {
		t.Errorf("runs[0] = %+v, want A's newest (INFO) record", runs[0])
	}
	if runs[1].TaskName != "B" {
		t.Errorf("runs[1] = %+v, want B", runs[1])
	}
}

func TestDurationStats(t *testing.T) {
	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	withDur := func(task string, secs float64) models.LogRecord {
		r := rec(task, models.LevelInfo, base)
		r.Details = map[string]any{"duration_seconds": secs}
		return r
	}

	records := []models.LogRecord{
		withDur("A", 2),
		withDur("A", 4),
		withDur("B", 10),
		rec("C", models.LevelInfo, base), // no duration: excluded here only
	}

	stats := DurationStats(records)
	if len(stats) != 2 {
		t.Fatalf("duration stats = %d entries, want 2", len(stats))
	}
	// Descending by mean: B (10) before A (3).
	if stats[0].TaskName != "B" || stats[0].Mean != 10 || stats[0].Max != 10 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].TaskName != "A" || stats[1].Mean != 3 || stats[1].Max != 4 || stats[1].Count != 2 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
	if len(stats[1].Samples) != 2 {
		t.Errorf("samples = %v, want the full distribution", stats[1].Samples)
	}

	// The record without a duration still counts toward the overview.
	if o := ComputeOverview(records); o.Total != 4 {
		t.Errorf("overview total = %d, want 4", o.Total)
	}
}

func TestFailureAlert(t *testing.T) {
	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []models.LogRecord{
		rec("A", models.LevelError, base),
		rec("B", models.LevelCritical, base),
		rec("A", models.LevelError, base),
		rec("C", models.LevelInfo, base),
	}

	a := FailureAlert(records)
	if a.Count != 3 {
		t.Errorf("alert count = %d, want 3", a.Count)
	}
	if len(a.Scripts) != 2 || a.Scripts[0] != "A" || a.Scripts[1] != "B" {
		t.Errorf("alert scripts = %v, want [A B] in first-seen order", a.Scripts)
	}

	if a := FailureAlert(nil); a.Count != 0 || len(a.Scripts) != 0 {
		t.Errorf("empty alert = %+v, want zero", a)
	}
}

func TestFilterComposition(t *testing.T) {
	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []models.LogRecord{
		{TaskName: "A", Level: models.LevelInfo, RunSource: "local", Timestamp: base},
		{TaskName: "A", Level: models.LevelError, RunSource: "github", Timestamp: base},
		{TaskName: "B", Level: models.LevelInfo, RunSource: "local", Timestamp: base},
	}

	if got := (Filter{}).Apply(records); len(got) != 3 {
		t.Errorf("zero filter matched %d, want all 3", len(got))
	}
	if got := (Filter{TaskName: "A"}).Apply(records); len(got) != 2 {
		t.Errorf("task filter matched %d, want 2", len(got))
	}
	if got := (Filter{TaskName: "A", Level: models.LevelError}).Apply(records); len(got) != 1 {
		t.Errorf("AND filter matched %d, want 1", len(got))
	}
	if got := (Filter{TaskName: "A", RunSource: "nowhere"}).Apply(records); len(got) != 0 {
		t.Errorf("non-matching filter matched %d, want 0", len(got))
	}
}

func TestEmptyInputsNeverFail(t *testing.T) {
	var empty []models.LogRecord

	if o := ComputeOverview(empty); o.Total != 0 || o.SuccessRate != 0 {
		t.Errorf("overview on empty = %+v, want zero values", o)
	}
	if trend := DailyTrend(empty); len(trend) != 0 {
		t.Errorf("trend on empty = %v, want empty", trend)
	}
	if stats := ScriptStats(empty); len(stats) != 0 {
		t.Errorf("script stats on empty = %v, want empty", stats)
	}
	sources, cells := SourceBreakdown(empty)
	if len(sources) != 0 || len(cells) != 0 {
		t.Errorf("source breakdown on empty = %v %v, want empty", sources, cells)
	}
	if errs := RecentErrors(empty, RecentErrorCount); len(errs) != 0 {
		t.Errorf("recent errors on empty = %v, want empty", errs)
	}
	if ranking := ErrorRanking(empty); len(ranking) != 0 {
		t.Errorf("ranking on empty = %v, want empty", ranking)
	}
	if stats := DurationStats(empty); len(stats) != 0 {
		t.Errorf("duration stats on empty = %v, want empty", stats)
	}
	if runs := LatestRuns(empty); len(runs) != 0 {
		t.Errorf("latest runs on empty = %v, want empty", runs)
	}
}
