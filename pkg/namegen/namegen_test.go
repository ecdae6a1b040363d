package namegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Acme", "acme"},
		{"strips_inc", "Acme Inc", "acme"},
		{"strips_llc", "Blue Bottle LLC", "bluebottle"},
		{"strips_punctuated_suffix", "Acme, Inc.", "acme"},
		{"keeps_embedded_words", "Costco", "costco"},
		{"only_entity_words", "Co Inc", ""},
		{"mixed_punctuation", "Joe's Café & Grill", "joescafgrill"},
		{"digits_kept", "Studio 54", "studio54"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeparatorVariants(t *testing.T) {
	got := SeparatorVariants("Blue Bottle Inc")
	want := []string{"bluebottle", "blue_bottle", "blue.bottle", "blue-bottle"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SeparatorVariants mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTopCandidate(t *testing.T) {
	candidates := Generate("Acme Inc", 10)
	if len(candidates) == 0 {
		t.Fatal("expected candidates, got none")
	}
	if candidates[0].Name != "acme" {
		t.Errorf("top candidate = %q, want %q", candidates[0].Name, "acme")
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > candidates[0].Score {
			t.Errorf("candidate %q outscores exact match", candidates[i].Name)
		}
	}
}

func TestGenerateBounds(t *testing.T) {
	for _, input := range []string{"Acme Inc", "x y", "The Very Long Business Name Holdings International Group"} {
		candidates := Generate(input, 10)
		if len(candidates) > 10 {
			t.Errorf("Generate(%q) returned %d candidates, limit is 10", input, len(candidates))
		}
		seen := make(map[string]bool)
		for _, c := range candidates {
			if len(c.Name) < MinLength || len(c.Name) > MaxLength {
				t.Errorf("candidate %q length %d outside [%d,%d]", c.Name, len(c.Name), MinLength, MaxLength)
			}
			if seen[c.Name] {
				t.Errorf("duplicate candidate %q", c.Name)
			}
			seen[c.Name] = true
		}
	}
}

func TestGenerateOrdering(t *testing.T) {
	candidates := Generate("Acme Inc", 10)
	for i := 1; i < len(candidates); i++ {
		prev, cur := candidates[i-1], candidates[i]
		if cur.Score > prev.Score {
			t.Errorf("candidates not in descending score order: %q (%.1f) after %q (%.1f)",
				cur.Name, cur.Score, prev.Name, prev.Score)
		}
		if cur.Score == prev.Score && cur.Name < prev.Name {
			t.Errorf("tie not broken lexicographically: %q after %q", cur.Name, prev.Name)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	first := Generate("Blue Bottle Coffee Co", 10)
	second := Generate("Blue Bottle Coffee Co", 10)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Generate not deterministic (-first +second):\n%s", diff)
	}
}

func TestGenerateEmptyToken(t *testing.T) {
	// A name made only of entity words still yields affix-only candidates.
	candidates := Generate("Co Inc", 10)
	if len(candidates) == 0 {
		t.Fatal("expected affix-only candidates for entity-word-only name")
	}
	found := false
	for _, c := range candidates {
		if c.Name == "official" {
			found = true
		}
		if len(c.Name) < MinLength {
			t.Errorf("candidate %q below minimum length", c.Name)
		}
	}
	if !found {
		t.Error("expected affix-only candidate \"official\"")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		business  string
		wantMin   float64
		wantMax   float64
	}{
		// exact: 100 + 20 + 50 - 2 + 10
		{"exact_match", "acme", "Acme Inc", 178, 178},
		// substring without noisy affix: 50 - 3.5 + 10
		{"affix_variant", "acmeinc", "Acme Inc", 56.5, 56.5},
		// noisy affix loses the clean bonus
		{"official_variant", "acmeofficial", "Acme Inc", 44, 44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.candidate, tt.business)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("Score(%q, %q) = %v, want in [%v,%v]",
					tt.candidate, tt.business, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestScorePrefersShorter(t *testing.T) {
	short := Score("acmehq", "Acme Inc")
	long := Score("acmecompany", "Acme Inc")
	if long >= short {
		t.Errorf("longer candidate should score lower: short=%v long=%v", short, long)
	}
}
