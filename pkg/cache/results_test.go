package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/prospect/pkg/profile"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data map[string][]byte
	fail bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.fail {
		return nil, false, errors.New("store down")
	}
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	if m.fail {
		return errors.New("store down")
	}
	m.data[key] = data
	return nil
}

func (m *memStore) Close() error { return nil }

func sampleResult() *profile.SearchResult {
	return &profile.SearchResult{
		Success:           true,
		Query:             "Acme",
		Platform:          "sherlock_osint",
		Results:           []profile.Profile{{ID: "linkedin_acme", Platform: "linkedin", Username: "acme"}},
		TotalFound:        1,
		SearchedUsernames: []string{"acme"},
	}
}

func TestRoundTripIncrementsHitCount(t *testing.T) {
	ctx := context.Background()
	results := NewResults(newMemStore(), nil)

	results.Save(ctx, "Acme", "sherlock_osint", sampleResult())

	got, ok := results.Lookup(ctx, "Acme", "sherlock_osint")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !got.Cached {
		t.Error("expected Cached=true on hit")
	}
	if got.HitCount != 2 {
		t.Errorf("hitCount = %d, want 2 (stored 1, incremented on read)", got.HitCount)
	}

	// A second read sees the persisted counter.
	got, ok = results.Lookup(ctx, "Acme", "sherlock_osint")
	if !ok {
		t.Fatal("expected second cache hit")
	}
	if got.HitCount != 3 {
		t.Errorf("hitCount = %d, want 3", got.HitCount)
	}

	if diff := cmp.Diff(sampleResult().Results, got.Results); diff != "" {
		t.Errorf("cached results mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupNormalizesQuery(t *testing.T) {
	ctx := context.Background()
	results := NewResults(newMemStore(), nil)

	results.Save(ctx, "Acme", "sherlock_osint", sampleResult())
	if _, ok := results.Lookup(ctx, "  acme  ", "sherlock_osint"); !ok {
		t.Error("expected hit for case/whitespace variant of query")
	}
	if _, ok := results.Lookup(ctx, "acme", "other_tag"); ok {
		t.Error("expected miss for different platform tag")
	}
}

func TestLookupExpired(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	results := NewResults(store, nil)

	results.Save(ctx, "Acme", "sherlock_osint", sampleResult())

	// Move the clock past the retention window.
	results.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Hour) }

	if _, ok := results.Lookup(ctx, "Acme", "sherlock_osint"); ok {
		t.Error("expected miss for expired entry")
	}
}

func TestStoreFailuresDegrade(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.fail = true
	results := NewResults(store, nil)

	// Neither call should panic or surface an error.
	results.Save(ctx, "Acme", "sherlock_osint", sampleResult())
	if _, ok := results.Lookup(ctx, "Acme", "sherlock_osint"); ok {
		t.Error("expected miss when store is failing")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	results := NewResults(nil, nil)

	results.Save(ctx, "Acme", "sherlock_osint", sampleResult())
	if _, ok := results.Lookup(ctx, "Acme", "sherlock_osint"); ok {
		t.Error("null store must never hit")
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Key("Acme", "sherlock_osint")
	b := Key(" ACME ", "sherlock_osint")
	if a != b {
		t.Errorf("equivalent queries should share a key: %q vs %q", a, b)
	}
	if Key("Acme", "x") == Key("Acme", "y") {
		t.Error("different tags must produce different keys")
	}
}
