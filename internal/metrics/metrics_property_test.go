package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/data-ashita/monitor-dash/internal/models"
)

// buildRecords constructs a record set with the given per-level counts spread
// across numScripts scripts and both run sources.
func buildRecords(numScripts, numInfo, numError, numCritical, numOther int) []models.LogRecord {
	if numScripts < 1 {
		numScripts = 1
	}

	names := make([]string, numScripts)
	for i := range names {
		names[i] = "script-" + uuid.New().String()[:8]
	}
	sources := []string{models.RunSourceLocal, models.RunSourceGitHub}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var records []models.LogRecord
	add := func(level models.Level, n int) {
		for i := 0; i < n; i++ {
			idx := len(records)
			records = append(records, models.LogRecord{
				ID:        int64(idx + 1),
				TaskName:  names[idx%numScripts],
				Level:     level,
				Message:   "run " + string(level),
				RunSource: sources[idx%len(sources)],
				Timestamp: base.Add(time.Duration(idx) * 13 * time.Minute),
			})
		}
	}
	add(models.LevelInfo, numInfo)
	add(models.LevelError, numError)
	add(models.LevelCritical, numCritical)
	add(models.Level("DEBUG"), numOther)

	return records
}

func TestOverviewCountInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("success + failure never exceeds total and rate stays in [0,1]", prop.ForAll(
		func(numScripts, numInfo, numError, numCritical, numOther int) bool {
			records := buildRecords(numScripts, numInfo, numError, numCritical, numOther)
			o := ComputeOverview(records)

			if o.Total != len(records) {
				t.Logf("total = %d, want %d", o.Total, len(records))
				return false
			}
			if o.Success+o.Failure > o.Total {
				t.Logf("success %d + failure %d > total %d", o.Success, o.Failure, o.Total)
				return false
			}
			if numOther == 0 && o.Success+o.Failure != o.Total {
				t.Logf("success %d + failure %d != total %d with only known levels", o.Success, o.Failure, o.Total)
				return false
			}
			if o.SuccessRate < 0 || o.SuccessRate > 1 {
				t.Logf("success rate %v out of [0,1]", o.SuccessRate)
				return false
			}
			return true
		},
		gen.IntRange(1, 5),
		gen.IntRange(0, 20),
		gen.IntRange(0, 20),
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func TestGroupingsPartitionTheTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("per-script, per-source, and per-day totals each sum to the overall total", prop.ForAll(
		func(numScripts, numInfo, numError, numCritical, numOther int) bool {
			records := buildRecords(numScripts, numInfo, numError, numCritical, numOther)
			total := len(records)

			scriptSum := 0
			for _, s := range ScriptStats(records) {
				scriptSum += s.Total
			}
			if scriptSum != total {
				t.Logf("script totals sum = %d, want %d", scriptSum, total)
				return false
			}

			sources, cells := SourceBreakdown(records)
			sourceSum := 0
			for _, s := range sources {
				sourceSum += s.Total
			}
			if sourceSum != total {
				t.Logf("source totals sum = %d, want %d", sourceSum, total)
				return false
			}
			cellSum := 0
			for _, c := range cells {
				cellSum += c.Count
			}
			if cellSum != total {
				t.Logf("cross-tab sum = %d, want %d", cellSum, total)
				return false
			}

			daySum := 0
			for _, b := range DailyTrend(records) {
				daySum += b.Total
			}
			if daySum != total {
				t.Logf("daily totals sum = %d, want %d", daySum, total)
				return false
			}

			return true
		},
		gen.IntRange(1, 5),
		gen.IntRange(0, 20),
		gen.IntRange(0, 20),
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func TestScriptStatsOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("script stats are sorted descending by total run count", prop.ForAll(
		func(numScripts, numInfo, numError int) bool {
			records := buildRecords(numScripts, numInfo, numError, 0, 0)
			stats := ScriptStats(records)
			for i := 1; i < len(stats); i++ {
				if stats[i].Total > stats[i-1].Total {
					t.Logf("stats not descending at %d: %d > %d", i, stats[i].Total, stats[i-1].Total)
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, 30),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}

func TestRecentErrorsBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("at most n recent errors, descending by timestamp, all error-level", prop.ForAll(
		func(numScripts, numInfo, numError, numCritical, n int) bool {
			records := buildRecords(numScripts, numInfo, numError, numCritical, 0)
			errs := RecentErrors(records, n)

			if len(errs) > n {
				t.Logf("recent errors = %d, cap %d", len(errs), n)
				return false
			}
			for i, e := range errs {
				if !e.Level.IsFailure() {
					t.Logf("non-error level %q in recent errors", e.Level)
					return false
				}
				if i > 0 && errs[i].Timestamp.After(errs[i-1].Timestamp) {
					t.Logf("recent errors not descending at %d", i)
					return false
				}
			}

			want := numError + numCritical
			if want > n {
				want = n
			}
			return len(errs) == want
		},
		gen.IntRange(1, 5),
		gen.IntRange(0, 10),
		gen.IntRange(0, 15),
		gen.IntRange(0, 15),
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}

func TestErrorRankingMatchesErrorCounts(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("ranking counts sum to the failure count and are descending", prop.ForAll(
		func(numScripts, numInfo, numError, numCritical int) bool {
			records := buildRecords(numScripts, numInfo, numError, numCritical, 0)
			ranking := ErrorRanking(records)

			sum := 0
			for i, r := range ranking {
				sum += r.Count
				if i > 0 && ranking[i].Count > ranking[i-1].Count {
					t.Logf("ranking not descending at %d", i)
					return false
				}
			}
			return sum == numError+numCritical
		},
		gen.IntRange(1, 5),
		gen.IntRange(0, 10),
		gen.IntRange(0, 15),
		gen.IntRange(0, 15),
	))

	properties.TestingRun(t)
}

func TestNonMatchingFilterYieldsZeroAggregates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("a filter matching no record degrades every aggregate to its zero form", prop.ForAll(
		func(numScripts, numInfo, numError int) bool {
			records := buildRecords(numScripts, numInfo, numError, 0, 0)
			filtered := Filter{TaskName: "no-such-script-" + uuid.New().String()}.Apply(records)

			if len(filtered) != 0 {
				t.Logf("filter matched %d records", len(filtered))
				return false
			}

			o := ComputeOverview(filtered)
			if o.Total != 0 || o.Success != 0 || o.Failure != 0 || o.SuccessRate != 0 || o.DistinctScripts != 0 {
				t.Logf("overview not zero: %+v", o)
				return false
			}
			sources, cells := SourceBreakdown(filtered)
			return len(ScriptStats(filtered)) == 0 &&
				len(DailyTrend(filtered)) == 0 &&
				len(sources) == 0 && len(cells) == 0 &&
				len(RecentErrors(filtered, RecentErrorCount)) == 0 &&
				len(ErrorRanking(filtered)) == 0 &&
				len(DurationStats(filtered)) == 0 &&
				len(LatestRuns(filtered)) == 0
		},
		gen.IntRange(1, 5),
		gen.IntRange(0, 20),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

func TestFilterSubsetAndOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("filtering yields an order-preserving subset matching every predicate", prop.ForAll(
		func(numScripts, numInfo, numError, numCritical int) bool {
			records := buildRecords(numScripts, numInfo, numError, numCritical, 0)
			f := Filter{Level: models.LevelError, RunSource: models.RunSourceLocal}
			filtered := f.Apply(records)

			for i := range filtered {
				if filtered[i].Level != models.LevelError || filtered[i].RunSource != models.RunSourceLocal {
					t.Logf("record %d violates the filter: %+v", i, filtered[i])
					return false
				}
			}
			for i := 1; i < len(filtered); i++ {
				if filtered[i].ID <= filtered[i-1].ID {
					t.Logf("input order not preserved at %d", i)
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 5),
		gen.IntRange(0, 20),
		gen.IntRange(0, 20),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}
