// Package namegen derives candidate social media usernames from a business name.
package namegen

import (
	"sort"
	"strings"
)

// Candidate length bounds enforced on every generated username.
const (
	MinLength = 3
	MaxLength = 30
)

// DefaultLimit is the number of candidates returned when no limit is given.
const DefaultLimit = 10

// businessWords are corporate entity words stripped when deriving the
// canonical token. Matched as whole words, not substrings.
var businessWords = map[string]bool{
	"inc": true, "llc": true, "ltd": true, "corp": true,
	"company": true, "co": true, "group": true, "agency": true,
}

// affixes are appended/prepended to the canonical token to form variants
// businesses commonly register when their plain name is taken.
var affixes = []string{"official", "real", "team", "hq", "inc", "corp", "company"}

// separators replace spaces in the cleaned business name.
var separators = []string{"", "_", ".", "-"}

// Candidate is a generated username with its likelihood score.
type Candidate struct {
	Name  string
	Score float64
}

// Normalize reduces a business name to its canonical token: lowercase,
// corporate entity words removed, all characters outside [a-z0-9] dropped.
// The result may be empty when the input consists only of entity words.
func Normalize(name string) string {
	return alnum(stripBusinessWords(name))
}

// stripBusinessWords lowercases the name and removes corporate entity words,
// preserving the remaining word structure.
func stripBusinessWords(name string) string {
	var kept []string
	for _, w := range strings.Fields(strings.ToLower(strings.TrimSpace(name))) {
		if businessWords[strings.Trim(w, ".,")] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// alnum keeps only [a-z0-9] from the lowercased input.
func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SeparatorVariants returns the cleaned name with spaces replaced by each
// known separator, filtered to username-safe characters [a-z0-9._-].
// Empty variants are omitted.
func SeparatorVariants(name string) []string {
	clean := stripBusinessWords(name)
	var variants []string
	for _, sep := range separators {
		v := filterUsernameChars(strings.ReplaceAll(clean, " ", sep))
		if v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}

func filterUsernameChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate expands a business name into at most limit candidate usernames,
// deduplicated and ordered by descending likelihood score. Ties are broken
// lexicographically so output is deterministic. A limit <= 0 means
// DefaultLimit.
func Generate(name string, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	token := Normalize(name)

	set := make(map[string]bool)
	add := func(u string) {
		if len(u) >= MinLength && len(u) <= MaxLength {
			set[u] = true
		}
	}

	add(token)
	for _, v := range SeparatorVariants(name) {
		add(v)
	}
	for _, affix := range affixes {
		add(token + affix)
		add(affix + token)
		add(token + "_" + affix)
		add(affix + "_" + token)
	}

	candidates := make([]Candidate, 0, len(set))
	for u := range set {
		candidates = append(candidates, Candidate{Name: u, Score: Score(u, name)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Name < candidates[j].Name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Names returns just the username strings of the given candidates, in order.
func Names(candidates []Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

// noisyAffixes disqualify a candidate from the "clean variant" bonus.
var noisyAffixes = []string{"official", "real", "team"}

// Score rates how likely a candidate username belongs to the named business.
// Higher is more likely. Pure function of its inputs.
func Score(candidate, businessName string) float64 {
	token := Normalize(businessName)

	var score float64
	if token != "" && candidate == token {
		score += 100
	}
	if token != "" && len(candidate) == len(token) {
		score += 20
	}
	if token != "" && strings.Contains(candidate, token) {
		score += 50
	}

	// Shorter handles are more plausible registrations.
	score -= float64(len(candidate)) * 0.5

	clean := true
	for _, affix := range noisyAffixes {
		if strings.Contains(candidate, affix) {
			clean = false
			break
		}
	}
	if clean {
		score += 10
	}

	return score
}
