// Package cache persists search results keyed by normalized query, with a
// fixed retention window and per-entry hit counters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/localfs"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/null"
)

// DefaultTTL is the retention window for cached search results.
const DefaultTTL = 90 * 24 * time.Hour

// Store is the minimal persistence contract the result cache needs.
// Implementations must treat all failures as recoverable; callers degrade
// to a miss or skip the write.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Close() error
}

// Disk is a Store with filesystem persistence.
type Disk struct {
	cache *sfcache.TieredCache[string, []byte]
}

// Open creates a disk-backed store at ~/.cache/prospect.
func Open(ttl time.Duration) (*Disk, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return OpenPath(ttl, filepath.Join(cacheDir, "prospect"))
}

// OpenPath creates a disk-backed store at the given path.
func OpenPath(ttl time.Duration, path string) (*Disk, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	persist, err := localfs.New[string, []byte]("prospect", path)
	if err != nil {
		return nil, fmt.Errorf("create persistence layer: %w", err)
	}

	tc, err := sfcache.NewTiered[string, []byte](persist, sfcache.TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &Disk{cache: tc}, nil
}

// Get retrieves a raw entry.
func (d *Disk) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return d.cache.Get(ctx, key)
}

// Set stores a raw entry with the given TTL.
func (d *Disk) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return d.cache.Set(ctx, key, data, ttl)
}

// Close flushes and closes the underlying cache.
func (d *Disk) Close() error {
	return d.cache.Close()
}

// Null is a Store that never finds and never stores. Useful in tests and
// when caching is disabled.
type Null struct {
	cache *sfcache.TieredCache[string, []byte]
}

// NewNull creates a no-op store.
func NewNull() *Null {
	tc, err := sfcache.NewTiered[string, []byte](null.New[string, []byte]())
	if err != nil {
		panic("sfcache.NewTiered with null store: " + err.Error())
	}
	return &Null{cache: tc}
}

// Get always misses.
func (n *Null) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.cache.Get(ctx, key)
}

// Set discards the entry.
func (n *Null) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return n.cache.Set(ctx, key, data, ttl)
}

// Close is a no-op.
func (n *Null) Close() error {
	return n.cache.Close()
}

// Key derives the cache key for a query under a logical platform tag.
// The query is trimmed and lowercased before hashing so equivalent
// spellings share an entry.
func Key(query, tag string) string {
	normalized := strings.ToLower(strings.TrimSpace(query)) + "_" + tag
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

var (
	_ Store = (*Disk)(nil)
	_ Store = (*Null)(nil)
)
