package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/data-ashita/monitor-dash/internal/fetch"
	"github.com/data-ashita/monitor-dash/internal/models"
)

// LogsHandler serves filtered raw log rows for the table view.
type LogsHandler struct {
	fetcher *fetch.Fetcher
	window  WindowOptions
	logger  *slog.Logger
}

// NewLogsHandler creates a new raw-logs handler.
func NewLogsHandler(f *fetch.Fetcher, window WindowOptions, logger *slog.Logger) *LogsHandler {
	if window.DefaultDays < 1 {
		window.DefaultDays = 7
	}
	if window.MaxDays < window.DefaultDays {
		window.MaxDays = 30
	}
	return &LogsHandler{
		fetcher: f,
		window:  window,
		logger:  logger,
	}
}

// LogsResponse carries filtered raw rows plus fetch metadata.
type LogsResponse struct {
	Days       int                `json:"days"`
	FetchedAt  time.Time          `json:"fetched_at"`
	FetchError string             `json:"fetch_error,omitempty"`
	Count      int                `json:"count"`
	Records    []models.LogRecord `json:"records"`
}

// Get handles GET /v1/dashboard/logs - filtered raw rows, newest first.
func (h *LogsHandler) Get(w http.ResponseWriter, r *http.Request) {
	days := h.window.DefaultDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil {
			days = d
		}
	}
	if days < 1 {
		days = 1
	}
	if days > h.window.MaxDays {
		days = h.window.MaxDays
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	resp := &LogsResponse{Days: days}

	result, err := h.fetcher.Fetch(r.Context(), days)
	resp.FetchedAt = result.FetchedAt
	if err != nil {
		h.logger.Error("logs fetch failed", "days", days, "error", err)
		resp.FetchError = "failed to fetch log records"
	}

	records := parseFilter(r).Apply(result.Records)
	if len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		records = []models.LogRecord{}
	}

	resp.Count = len(records)
	resp.Records = records

	WriteJSON(w, http.StatusOK, resp)
}
