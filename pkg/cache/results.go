// Result-level cache operations: lookup with hit counting, save with the
// standard retention window.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/prospect/pkg/profile"
)

// Entry is the stored record for one cached search.
type Entry struct {
	Result         profile.SearchResult `json:"response_data"`
	HitCount       int                  `json:"hit_count"`
	ExpiresAt      time.Time            `json:"expires_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
}

// Results caches search results in a Store. All failures degrade: a broken
// read is a miss, a broken write is skipped. Nothing here surfaces errors
// to the search path.
type Results struct {
	store  Store
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewResults wraps a store. A nil store gets the no-op implementation.
func NewResults(store Store, logger *slog.Logger) *Results {
	if store == nil {
		store = NewNull()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Results{store: store, logger: logger, ttl: DefaultTTL, now: time.Now}
}

// Lookup returns the cached result for (query, tag) if present and
// unexpired. On a hit the entry's counter is incremented and persisted
// best-effort; the returned result carries Cached=true and the updated
// count.
func (r *Results) Lookup(ctx context.Context, query, tag string) (*profile.SearchResult, bool) {
	key := Key(query, tag)

	data, found, err := r.store.Get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		r.logger.WarnContext(ctx, "cache entry corrupt, ignoring", "key", key, "error", err)
		return nil, false
	}

	now := r.now()
	if !entry.ExpiresAt.IsZero() && now.After(entry.ExpiresAt) {
		return nil, false
	}

	entry.HitCount++
	entry.LastAccessedAt = now
	if updated, err := json.Marshal(entry); err == nil {
		// Re-store under the remaining lifetime; a write conflict or
		// failure just means the counter lags.
		remaining := r.ttl
		if !entry.ExpiresAt.IsZero() {
			remaining = entry.ExpiresAt.Sub(now)
		}
		if err := r.store.Set(ctx, key, updated, remaining); err != nil {
			r.logger.WarnContext(ctx, "cache hit-count update failed", "key", key, "error", err)
		}
	}

	result := entry.Result
	result.Cached = true
	result.HitCount = entry.HitCount
	return &result, true
}

// Save stores a search result for (query, tag) with the standard TTL.
func (r *Results) Save(ctx context.Context, query, tag string, result *profile.SearchResult) {
	key := Key(query, tag)
	now := r.now()

	entry := Entry{
		Result:         *result,
		HitCount:       1,
		ExpiresAt:      now.Add(r.ttl),
		LastAccessedAt: now,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		r.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}

	if err := r.store.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		return
	}
	r.logger.InfoContext(ctx, "cached search result", "query", query, "key", key, "ttl", r.ttl)
}

// Close closes the underlying store.
func (r *Results) Close() error {
	return r.store.Close()
}
