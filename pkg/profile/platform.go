// Platform identification from profile URLs.

package profile

import (
	"net/url"
	"strings"
)

// domainPlatforms maps profile URL domains to platform identifiers.
// URLs outside this table are not business-relevant and are dropped.
var domainPlatforms = map[string]string{
	"instagram.com": "instagram",
	"facebook.com":  "facebook",
	"linkedin.com":  "linkedin",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"tiktok.com":    "tiktok",
	"youtube.com":   "youtube",
	"pinterest.com": "pinterest",
	"snapchat.com":  "snapchat",
	"reddit.com":    "reddit",
	"medium.com":    "medium",
	"behance.net":   "behance",
	"dribbble.com":  "dribbble",
	"github.com":    "github",
	"gitlab.com":    "gitlab",
}

// PlatformFromURL identifies the platform a profile URL belongs to.
// Returns "" for unknown domains.
func PlatformFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return domainPlatforms[host]
}

// CanonicalURL normalizes a URL for deduplication: scheme and host are
// lowercased, the path is left alone (usernames may be case-sensitive on
// some platforms, but a profile URL differing only in domain case is the
// same profile).
func CanonicalURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return strings.TrimSuffix(u.String(), "/")
}
