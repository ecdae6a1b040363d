// Package profile defines the common types for discovered business profiles
// and materializes raw probe hits into deduplicated, structured records.
package profile

import (
	"errors"
)

// Sources distinguish how a profile was discovered.
const (
	SourceOSINT    = "sherlock_osint" // returned by the external scanner
	SourceFallback = "fallback"       // synthesized when the scanner is unavailable
)

// ErrQueryTooShort is returned when a search query is missing or under two
// characters after trimming.
var ErrQueryTooShort = errors.New("query must be at least 2 characters")

// Profile represents one discovered or hypothesized social-platform presence
// for a business.
type Profile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Platform       string  `json:"platform"`
	ProfileURL     string  `json:"profile_url"`
	Username       string  `json:"username"`
	Verified       bool    `json:"verified"`
	Confidence     float64 `json:"confidence"`
	RelevanceScore int     `json:"relevance_score"`
	Source         string  `json:"source"`
	Method         string  `json:"search_method,omitempty"`
}

// SearchResult is the outcome of one business search.
type SearchResult struct {
	Success           bool      `json:"success"`
	Query             string    `json:"query"`
	Platform          string    `json:"platform"`
	Results           []Profile `json:"results"`
	TotalFound        int       `json:"totalFound"`
	SearchedUsernames []string  `json:"searchedUsernames"`
	Cached            bool      `json:"cached,omitempty"`
	HitCount          int       `json:"hitCount,omitempty"`
	Error             string    `json:"error,omitempty"`
	Message           string    `json:"message,omitempty"`
}
