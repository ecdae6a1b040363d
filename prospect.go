// Package prospect discovers business social-media profiles. Given a
// business name it derives plausible usernames, probes platforms for
// matching profiles through an external scanner, ranks the results against
// the original name, and caches the ranked list.
//
// Basic usage:
//
//	result, err := prospect.Search(ctx, "Acme Inc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range result.Results {
//	    fmt.Println(p.Platform, p.ProfileURL)
//	}
package prospect

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/prospect/pkg/cache"
	"github.com/codeGROOVE-dev/prospect/pkg/guess"
	"github.com/codeGROOVE-dev/prospect/pkg/namegen"
	"github.com/codeGROOVE-dev/prospect/pkg/probe"
	"github.com/codeGROOVE-dev/prospect/pkg/profile"
	"github.com/codeGROOVE-dev/prospect/pkg/rank"
)

// PlatformTag is the logical tag identifying this search method in
// responses and cache keys.
const PlatformTag = "sherlock_osint"

// ErrQueryTooShort re-exports profile.ErrQueryTooShort for convenience.
var ErrQueryTooShort = profile.ErrQueryTooShort

// Defaults for the search pipeline.
const (
	defaultMaxUsernames = 10
	defaultConcurrency  = 3
	defaultProbeTimeout = 30 * time.Second
	defaultTimeout      = 2 * time.Minute
)

// Option configures a Search call.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	results      *cache.Results
	prober       probe.Prober
	verifier     profile.Verifier
	platforms    []string
	maxUsernames int
	concurrency  int
	probeTimeout time.Duration
	timeout      time.Duration
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithResultCache sets the result cache consulted before probing and
// populated after.
func WithResultCache(results *cache.Results) Option {
	return func(c *config) { c.results = results }
}

// WithProber replaces the default scanner-backed prober.
func WithProber(p probe.Prober) Option {
	return func(c *config) { c.prober = p }
}

// WithVerifier enables best-effort existence checks on discovered URLs.
func WithVerifier(v profile.Verifier) Option {
	return func(c *config) { c.verifier = v }
}

// WithPlatforms restricts probing to the given platform identifiers.
func WithPlatforms(platforms []string) Option {
	return func(c *config) { c.platforms = platforms }
}

// WithMaxUsernames caps how many username candidates are probed.
func WithMaxUsernames(n int) Option {
	return func(c *config) { c.maxUsernames = n }
}

// WithProbeTimeout sets the per-username probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *config) { c.probeTimeout = d }
}

// WithTimeout sets the aggregate deadline for the whole search.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// Search runs the full discovery pipeline for a business name. Probe
// failures degrade to synthesized fallback profiles; only input validation
// and context errors surface to the caller.
func Search(ctx context.Context, query string, opts ...Option) (*profile.SearchResult, error) {
	cfg := &config{
		logger:       slog.Default(),
		maxUsernames: defaultMaxUsernames,
		concurrency:  defaultConcurrency,
		probeTimeout: defaultProbeTimeout,
		timeout:      defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.prober == nil {
		cfg.prober = probe.NewRunner(probe.WithLogger(cfg.logger))
	}

	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, ErrQueryTooShort
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	cfg.logger.InfoContext(ctx, "starting business profile search", "query", query)

	if cfg.results != nil {
		if cached, ok := cfg.results.Lookup(ctx, query, PlatformTag); ok {
			cfg.logger.InfoContext(ctx, "cache hit", "query", query, "hit_count", cached.HitCount)
			cached.Message = "Cached OSINT results"
			return cached, nil
		}
	}

	candidates := namegen.Generate(query, cfg.maxUsernames)
	searched := namegen.Names(candidates)
	cfg.logger.InfoContext(ctx, "generated username candidates", "count", len(candidates))

	hitsByCandidate := make([][]probe.Hit, len(candidates))
	fallbackByCandidate := make([][]profile.Profile, len(candidates))
	var scannerMissing atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for i, cand := range candidates {
		if scannerMissing.Load() {
			break
		}
		g.Go(func() error {
			if scannerMissing.Load() || gctx.Err() != nil {
				return nil
			}

			pctx, pcancel := context.WithTimeout(gctx, cfg.probeTimeout)
			defer pcancel()

			hits, err := cfg.prober.Probe(pctx, cand.Name, cfg.platforms)
			switch {
			case err == nil:
				hitsByCandidate[i] = hits
			case isNotInstalled(err):
				scannerMissing.Store(true)
			default:
				// Timeout or malformed output for this one username:
				// synthesize likely profiles instead of losing it.
				cfg.logger.WarnContext(gctx, "probe failed, using fallback profiles",
					"username", cand.Name, "error", err)
				fallbackByCandidate[i] = guess.Profiles(cand.Name, query)
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	var hits []probe.Hit
	var fallbacks []profile.Profile
	for i := range candidates {
		hits = append(hits, hitsByCandidate[i]...)
		fallbacks = append(fallbacks, fallbackByCandidate[i]...)
	}

	profiles := profile.Materialize(ctx, hits, query, cfg.verifier)

	// Scanner entirely absent: degrade to one fallback set for the full
	// business name rather than fabricating a set per candidate.
	if scannerMissing.Load() && len(profiles) == 0 && len(fallbacks) == 0 {
		username := alnum(query)
		if username == "" && len(candidates) > 0 {
			username = candidates[0].Name
		}
		cfg.logger.WarnContext(ctx, "scanner unavailable, synthesizing fallback profiles", "username", username)
		fallbacks = guess.Profiles(username, query)
		searched = []string{username}
	}

	profiles = mergeProfiles(profiles, fallbacks)
	ranked := rank.Rank(profiles, query)

	result := &profile.SearchResult{
		Success:           true,
		Query:             query,
		Platform:          PlatformTag,
		Results:           ranked,
		TotalFound:        len(profiles),
		SearchedUsernames: searched,
		Message:           "OSINT search completed",
	}

	cfg.logger.InfoContext(ctx, "search complete",
		"query", query, "found", result.TotalFound, "returned", len(ranked))

	// Skip the cache write if the caller already gave up.
	if cfg.results != nil && ctx.Err() == nil {
		cfg.results.Save(ctx, query, PlatformTag, result)
	}

	return result, nil
}

func isNotInstalled(err error) bool {
	return errors.Is(err, probe.ErrNotInstalled)
}

// alnum lowercases s and strips everything but letters and digits.
func alnum(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, s)
}

// mergeProfiles appends extras to base, skipping any whose canonical URL is
// already present.
func mergeProfiles(base, extras []profile.Profile) []profile.Profile {
	seen := make(map[string]bool, len(base))
	for _, p := range base {
		seen[profile.CanonicalURL(p.ProfileURL)] = true
	}
	for _, p := range extras {
		key := profile.CanonicalURL(p.ProfileURL)
		if seen[key] {
			continue
		}
		seen[key] = true
		base = append(base, p)
	}
	return base
}
