// Best-effort existence checks for profile URLs.

package profile

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// userAgent mirrors a real browser; several platforms reject default Go
// client strings outright.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0"

// HTTPVerifier confirms profile existence with a HEAD request.
type HTTPVerifier struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPVerifier creates a verifier with a 5 second request timeout.
func NewHTTPVerifier(logger *slog.Logger) *HTTPVerifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPVerifier{
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

// Verify returns true only for a 200 response. Any failure, including
// timeouts and transport errors, reports false.
func (v *HTTPVerifier) Verify(ctx context.Context, url string) bool {
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
			if err != nil {
				return err
			}
			req.Header.Set("User-Agent", userAgent)

			resp, err := v.client.Do(req)
			if err != nil {
				return err
			}
			resp.Body.Close() //nolint:errcheck // intentional

			if resp.StatusCode != http.StatusOK {
				return &httpStatusError{code: resp.StatusCode}
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2), // single retry
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			v.logger.DebugContext(ctx, "retrying HEAD check", "attempt", n+1, "url", url, "error", err)
		}),
	)
	if err != nil {
		v.logger.DebugContext(ctx, "existence check failed", "url", url, "error", err)
		return false
	}
	return true
}

type httpStatusError struct{ code int }

func (e *httpStatusError) Error() string { return http.StatusText(e.code) }

// Ensure HTTPVerifier implements Verifier.
var _ Verifier = (*HTTPVerifier)(nil)
