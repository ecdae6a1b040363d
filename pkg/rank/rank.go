// Package rank orders discovered profiles by relevance to the queried
// business.
package rank

import (
	"sort"
	"strings"

	"github.com/codeGROOVE-dev/prospect/pkg/namegen"
	"github.com/codeGROOVE-dev/prospect/pkg/profile"
)

// MaxResults caps the ranked output.
const MaxResults = 20

// maxConfidence caps the confidence derived from a relevance score.
const maxConfidence = 0.9

// platformPriority biases results toward platforms where businesses
// maintain a primary presence.
var platformPriority = map[string]int{
	"linkedin":  30,
	"instagram": 25,
	"facebook":  20,
	"twitter":   15,
	"youtube":   10,
	"tiktok":    5,
}

// Score computes the relevance of one (username, platform) pair to a
// business name. Never negative.
func Score(username, businessName, platform string) int {
	token := namegen.Normalize(businessName)

	var score int
	switch {
	case token != "" && username == token:
		score += 100
	case token != "" && strings.Contains(username, token):
		score += 70
	case anyWordIn(businessName, username):
		score += 40
	}

	score += platformPriority[platform]

	if len(username) > 20 {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	return score
}

// anyWordIn reports whether any word of the business name, reduced to its
// alphanumeric form, appears in the username.
func anyWordIn(businessName, username string) bool {
	for _, w := range strings.Fields(strings.ToLower(businessName)) {
		w = namegen.Normalize(w)
		if w != "" && strings.Contains(username, w) {
			return true
		}
	}
	return false
}

// Rank scores, sorts, and truncates profiles. Scanner-discovered profiles
// get their relevance and confidence recomputed here; synthesized fallback
// profiles keep their fixed values and only participate in the ordering.
// The sort is stable so equal scores preserve materialization order.
func Rank(profiles []profile.Profile, businessName string) []profile.Profile {
	ranked := make([]profile.Profile, len(profiles))
	copy(ranked, profiles)

	for i := range ranked {
		if ranked[i].Source != profile.SourceOSINT {
			continue
		}
		score := Score(ranked[i].Username, businessName, ranked[i].Platform)
		ranked[i].RelevanceScore = score
		ranked[i].Confidence = confidence(score)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked
}

func confidence(score int) float64 {
	c := float64(score) / 100
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}
