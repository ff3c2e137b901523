// Package handlers provides HTTP request handlers for the dashboard API.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/data-ashita/monitor-dash/internal/fetch"
	"github.com/data-ashita/monitor-dash/internal/metrics"
	"github.com/data-ashita/monitor-dash/internal/models"
)

// WindowOptions bound the lookback-window control.
type WindowOptions struct {
	DefaultDays int
	MaxDays     int
}

// DashboardHandler serves every aggregate over the current log window.
type DashboardHandler struct {
	fetcher *fetch.Fetcher
	window  WindowOptions
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(f *fetch.Fetcher, window WindowOptions, logger *slog.Logger) *DashboardHandler {
	if window.DefaultDays < 1 {
		window.DefaultDays = 7
	}
	if window.MaxDays < window.DefaultDays {
		window.MaxDays = 30
	}
	return &DashboardHandler{
		fetcher: f,
		window:  window,
		logger:  logger,
	}
}

// FilterEcho mirrors the applied filter back to the client.
type FilterEcho struct {
	TaskName  string `json:"task_name,omitempty"`
	Level     string `json:"level,omitempty"`
	RunSource string `json:"run_source,omitempty"`
}

// DashboardResponse carries every aggregate for one render cycle.
// A fetch failure yields empty aggregates plus FetchError; the page renders a
// visible warning rather than erroring.
type DashboardResponse struct {
	Days          int        `json:"days"`
	Filter        FilterEcho `json:"filter"`
	FetchedAt     time.Time  `json:"fetched_at"`
	FetchError    string     `json:"fetch_error,omitempty"`
	TotalInWindow int        `json:"total_in_window"`
	Truncated     bool       `json:"truncated"`

	Overview      metrics.Overview            `json:"overview"`
	Alert         metrics.Alert               `json:"alert"`
	LatestRuns    []models.LogRecord          `json:"latest_runs"`
	ScriptStats   []metrics.ScriptStat        `json:"script_stats"`
	DailyTrend    []metrics.DayBucket         `json:"daily_trend"`
	Sources       []metrics.SourceCount       `json:"sources"`
	SourceScripts []metrics.SourceScriptCount `json:"source_scripts"`
	RecentErrors  []models.LogRecord          `json:"recent_errors"`
	ErrorRanking  []metrics.ScriptErrorCount  `json:"error_ranking"`
	DurationStats []metrics.ScriptDuration    `json:"duration_stats"`
}

// Get handles GET /v1/dashboard - one synchronous fetch/filter/aggregate cycle.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := h.Compute(r)
	WriteJSON(w, http.StatusOK, resp)
}

// Compute runs the full render cycle for the request's controls and returns
// the aggregate payload. Shared by the JSON endpoint and the HTML page.
func (h *DashboardHandler) Compute(r *http.Request) *DashboardResponse {
	days := h.parseDays(r)
	filter := parseFilter(r)

	resp := &DashboardResponse{
		Days: days,
		Filter: FilterEcho{
			TaskName:  filter.TaskName,
			Level:     string(filter.Level),
			RunSource: filter.RunSource,
		},
	}

	result, err := h.fetcher.Fetch(r.Context(), days)
	resp.FetchedAt = result.FetchedAt
	resp.TotalInWindow = result.Total
	resp.Truncated = result.Truncated
	if err != nil {
		h.logger.Error("dashboard fetch failed", "days", days, "error", err)
		resp.FetchError = "failed to fetch log records"
	}

	records := filter.Apply(result.Records)

	resp.Overview = metrics.ComputeOverview(records)
	resp.Alert = metrics.FailureAlert(records)
	resp.LatestRuns = metrics.LatestRuns(records)
	resp.ScriptStats = metrics.ScriptStats(records)
	resp.DailyTrend = metrics.DailyTrend(records)
	resp.Sources, resp.SourceScripts = metrics.SourceBreakdown(records)
	resp.RecentErrors = metrics.RecentErrors(records, metrics.RecentErrorCount)
	resp.ErrorRanking = metrics.ErrorRanking(records)
	resp.DurationStats = metrics.DurationStats(records)

	return resp
}

// Refresh handles POST /v1/dashboard/refresh - invalidates the memoized fetch
// so the next interaction re-queries the store.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			WriteBadRequest(w, "days must be an integer")
			return
		}
		h.fetcher.Invalidate(h.clampDays(days))
	} else {
		h.fetcher.InvalidateAll()
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// parseDays reads the lookback window, clamped into [1, MaxDays].
func (h *DashboardHandler) parseDays(r *http.Request) int {
	days := h.window.DefaultDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil {
			days = d
		}
	}
	return h.clampDays(days)
}

func (h *DashboardHandler) clampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > h.window.MaxDays {
		return h.window.MaxDays
	}
	return days
}

// parseFilter reads the optional exact-match filter controls.
func parseFilter(r *http.Request) metrics.Filter {
	return metrics.Filter{
		TaskName:  r.URL.Query().Get("task"),
		Level:     models.Level(r.URL.Query().Get("level")),
		RunSource: r.URL.Query().Get("source"),
	}
}
