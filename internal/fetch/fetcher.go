// Package fetch retrieves log records from the store with TTL memoization.
package fetch

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/data-ashita/monitor-dash/internal/models"
	"github.com/data-ashita/monitor-dash/internal/store"
)

// DefaultTTL is the default time-to-live for a fetched result.
const DefaultTTL = 60 * time.Second

// DefaultLimit caps the number of rows returned per fetch. Rows beyond the
// cap are excluded oldest-first, so the most recent rows always survive.
const DefaultLimit = 1000

// Result is one fetched window of log records plus fetch metadata.
// Records are immutable once the result is cached.
type Result struct {
	Records   []models.LogRecord `json:"records"`
	FetchedAt time.Time          `json:"fetched_at"`
	// Total is the number of rows in the window before the row cap.
	Total     int  `json:"total"`
	Truncated bool `json:"truncated"`
}

// entry is one memoized cache slot keyed by lookback days.
type entry struct {
	result    *Result
	fetchedAt time.Time
}

// Fetcher retrieves log records within a lookback window and memoizes each
// result per days key for a fixed TTL. Entries are immutable once written,
// so concurrent readers need no coordination beyond the map lock. Misses go
// through a singleflight group keyed by days, so concurrent requests for the
// same window share one query and a slow window never blocks the others.
type Fetcher struct {
	store  store.Store
	logger *slog.Logger
	ttl    time.Duration
	limit  int

	mu      sync.RWMutex
	entries map[int]entry
	group   singleflight.Group

	now func() time.Time
}

// New creates a Fetcher over the given store.
func New(st store.Store, ttl time.Duration, limit int, logger *slog.Logger) *Fetcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		store:   st,
		logger:  logger,
		ttl:     ttl,
		limit:   limit,
		entries: make(map[int]entry),
		now:     time.Now,
	}
}

// Fetch returns all records with timestamp >= now-days, newest first.
// A result fetched within the TTL for the same days value is reused verbatim,
// even if the underlying table changed in the meantime. On a query failure it
// returns an empty result plus the error; failures are never cached, so the
// next interaction retries.
func (f *Fetcher) Fetch(ctx context.Context, days int) (*Result, error) {
	if r, ok := f.cached(days); ok {
		return r, nil
	}

	v, err, _ := f.group.Do(strconv.Itoa(days), func() (any, error) {
		// Re-check after winning the flight; a concurrent fetch may have
		// populated the slot.
		if r, ok := f.cached(days); ok {
			return r, nil
		}

		result, err := f.query(ctx, days)
		if err != nil {
			return nil, err
		}

		f.mu.Lock()
		f.entries[days] = entry{result: result, fetchedAt: result.FetchedAt}
		f.mu.Unlock()
		return result, nil
	})
	if err != nil {
		f.logger.Error("log fetch failed", "days", days, "error", err)
		return &Result{Records: []models.LogRecord{}, FetchedAt: f.now()}, err
	}

	return v.(*Result), nil
}

// cached returns the memoized result for days if it is still within the TTL.
func (f *Fetcher) cached(days int) (*Result, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if e, ok := f.entries[days]; ok && f.now().Sub(e.fetchedAt) < f.ttl {
		return e.result, true
	}
	return nil, false
}

// query performs the single-attempt range query against the store.
func (f *Fetcher) query(ctx context.Context, days int) (*Result, error) {
	fetchedAt := f.now()
	cutoff := fetchedAt.AddDate(0, 0, -days)

	records, err := f.store.Logs().ListSince(ctx, cutoff, f.limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.LogRecord{}
	}

	result := &Result{
		Records:   records,
		FetchedAt: fetchedAt,
		Total:     len(records),
	}

	if len(records) == f.limit {
		result.Truncated = true
		if total, err := f.store.Logs().CountSince(ctx, cutoff); err == nil {
			result.Total = total
			result.Truncated = total > f.limit
		} else {
			f.logger.Warn("log count failed", "days", days, "error", err)
		}
	}

	return result, nil
}

// Invalidate drops the memoized entry for the given days value.
func (f *Fetcher) Invalidate(days int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, days)
}

// InvalidateAll drops every memoized entry, forcing fresh fetches.
func (f *Fetcher) InvalidateAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[int]entry)
}
