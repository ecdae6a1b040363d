// Package guess synthesizes likely profile URLs when the external scanner
// is unavailable. This is an explicit degraded mode: results are marked
// unverified with fixed confidence so callers can tell them apart from
// scanner-confirmed discoveries.
package guess

import (
	"fmt"

	"github.com/codeGROOVE-dev/prospect/pkg/profile"
)

// Fixed confidence and relevance for synthesized profiles, deliberately
// below what a scanner-confirmed exact match can reach.
const (
	Confidence = 0.7
	Relevance  = 75
)

// Platform URL patterns for the major business platforms, in output order.
var platformPatterns = []struct {
	name    string
	pattern string
}{
	{"instagram", "https://instagram.com/%s"},
	{"facebook", "https://facebook.com/%s"},
	{"linkedin", "https://www.linkedin.com/company/%s"},
	{"twitter", "https://x.com/%s"},
	{"tiktok", "https://www.tiktok.com/@%s"},
	{"youtube", "https://www.youtube.com/@%s"},
}

// Profiles generates one unverified profile per major platform for the
// given username. Output order and content are deterministic.
func Profiles(username, businessName string) []profile.Profile {
	profiles := make([]profile.Profile, 0, len(platformPatterns))
	for _, pp := range platformPatterns {
		profiles = append(profiles, profile.Profile{
			ID:             pp.name + "_" + username,
			Name:           businessName,
			Platform:       pp.name,
			ProfileURL:     fmt.Sprintf(pp.pattern, username),
			Username:       username,
			Verified:       false,
			Confidence:     Confidence,
			RelevanceScore: Relevance,
			Source:         profile.SourceFallback,
			Method:         "fallback",
		})
	}
	return profiles
}
