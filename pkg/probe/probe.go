// Package probe checks whether a username exists across social platforms by
// driving an external sherlock-compatible scanner as a subprocess.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// ErrNotInstalled is returned when the scanner binary cannot be found.
var ErrNotInstalled = errors.New("scanner binary not installed")

// DefaultTimeout bounds a single scanner invocation.
const DefaultTimeout = 30 * time.Second

// Hit is one discovered (platform, url) pair for a probed username.
type Hit struct {
	Platform string
	URL      string
	Username string
}

// Prober discovers platform profiles for a username. An empty result is not
// an error; implementations may also fail per call (timeout, missing tool)
// and callers are expected to degrade rather than abort.
type Prober interface {
	Probe(ctx context.Context, username string, platforms []string) ([]Hit, error)
}

// Runner invokes the sherlock CLI for each probe.
type Runner struct {
	logger  *slog.Logger
	binary  string
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithBinary overrides the scanner binary name or path.
func WithBinary(path string) Option {
	return func(r *Runner) { r.binary = path }
}

// WithTimeout sets the per-invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a Runner with defaults (binary "sherlock", 30s timeout).
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		binary:  "sherlock",
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Probe runs the scanner for one username. The optional platforms list is
// passed through as --site filters. Output is parsed best-effort: lines the
// parser does not recognize are ignored.
func (r *Runner) Probe(ctx context.Context, username string, platforms []string) ([]Hit, error) {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, r.binary)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := []string{username, "--print-found", "--no-color", "--timeout", "10"}
	for _, p := range platforms {
		args = append(args, "--site", strings.ToLower(p))
	}

	r.logger.InfoContext(ctx, "probing username", "username", username, "sites", len(platforms))

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("scanner timed out for %q: %w", username, ctx.Err())
		}
		return nil, fmt.Errorf("scanner failed for %q: %w", username, err)
	}

	hits := ParseOutput(stdout.Bytes(), username)
	r.logger.InfoContext(ctx, "probe complete", "username", username, "hits", len(hits))
	return hits, nil
}

// foundLine matches sherlock's "[+] Platform: URL" result lines.
var foundLine = regexp.MustCompile(`^\[\+\]\s*([^:]+):\s*(https?://\S+)`)

// absoluteURL is the fallback extractor for unrecognized line shapes.
var absoluteURL = regexp.MustCompile(`https?://[^\s<>"']+`)

// ParseOutput extracts hits from scanner stdout. Recognized "[+]" lines
// yield the platform label the scanner printed; other lines fall back to
// bare absolute-URL extraction with no platform label (the materializer
// identifies platforms from domains anyway). At most one hit per platform
// label is kept, first occurrence wins.
func ParseOutput(out []byte, username string) []Hit {
	var hits []Hit
	seenPlatform := make(map[string]bool)
	seenURL := make(map[string]bool)

	for line := range strings.SplitSeq(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := foundLine.FindStringSubmatch(line); m != nil {
			platform := strings.ToLower(strings.TrimSpace(m[1]))
			url := strings.TrimRight(m[2], ".,")
			if platform == "" || seenPlatform[platform] || seenURL[url] {
				continue
			}
			seenPlatform[platform] = true
			seenURL[url] = true
			hits = append(hits, Hit{Platform: platform, URL: url, Username: username})
			continue
		}

		for _, url := range absoluteURL.FindAllString(line, -1) {
			url = strings.TrimRight(url, ".,")
			if seenURL[url] {
				continue
			}
			seenURL[url] = true
			hits = append(hits, Hit{URL: url, Username: username})
		}
	}

	return hits
}
