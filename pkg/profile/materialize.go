// Materialization of raw probe hits into Profile records.

package profile

import (
	"context"

	"github.com/codeGROOVE-dev/prospect/pkg/probe"
)

// Verifier checks whether a profile URL is reachable. Implementations are
// best-effort: a false result means "unconfirmed", never "search failed".
type Verifier interface {
	Verify(ctx context.Context, url string) bool
}

// Materialize turns probe hits into deduplicated profiles for a business.
// The platform is identified from each URL's domain; hits on unknown
// domains are dropped. Deduplication is by canonical URL, first occurrence
// wins. A nil verifier leaves every profile unverified.
func Materialize(ctx context.Context, hits []probe.Hit, businessName string, v Verifier) []Profile {
	seen := make(map[string]bool)
	var profiles []Profile

	for _, hit := range hits {
		platform := PlatformFromURL(hit.URL)
		if platform == "" {
			continue
		}

		key := CanonicalURL(hit.URL)
		if seen[key] {
			continue
		}
		seen[key] = true

		verified := false
		if v != nil {
			verified = v.Verify(ctx, hit.URL)
		}

		profiles = append(profiles, Profile{
			ID:         platform + "_" + hit.Username,
			Name:       businessName,
			Platform:   platform,
			ProfileURL: hit.URL,
			Username:   hit.Username,
			Verified:   verified,
			Source:     SourceOSINT,
			Method:     "osint",
		})
	}

	return profiles
}
