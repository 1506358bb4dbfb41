package contradiction

import (
	"testing"

	"github.com/trizworks/triz-engine/internal/knowledge"
)

func newIdentifier(t *testing.T) *Identifier {
	t.Helper()
	base, err := knowledge.Default()
	if err != nil {
		t.Fatalf("knowledge.Default: %v", err)
	}
	return NewIdentifier(base)
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"speed", "", 5},
		{"speed", "speed", 0},
		{"speed", "speeed", 1},
		{"Speed", "sPeeD", 0},
		{"kitten", "sitting", 3},
		{"weight", "height", 2},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Fatalf("Levenshtein(%q,%q): got %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFuzzyTierMonotonicity(t *testing.T) {
	id := newIdentifier(t)

	score := func(keyword string) float64 {
		for _, c := range id.matchKeyword(keyword) {
			if c.parameterID == 9 {
				return c.score
			}
		}
		return 0
	}

	exact := score("speed")
	substring := score("spee")
	edit := score("speef")

	if exact != scoreExact {
		t.Fatalf("exact: got %v", exact)
	}
	if substring != scoreSubstring {
		t.Fatalf("substring: got %v", substring)
	}
	if edit != scoreEditDist {
		t.Fatalf("edit distance: got %v", edit)
	}
	if !(exact >= substring && substring >= edit) {
		t.Fatalf("tier order violated: %v %v %v", exact, substring, edit)
	}
}

func TestIdentifySpeedVersusWeight(t *testing.T) {
	id := newIdentifier(t)
	result := id.Identify("We must increase the speed but it increases weight of the assembly")

	if result.Primary == nil {
		t.Fatal("expected a primary contradiction")
	}
	if result.Primary.ImprovingParameter != 9 {
		t.Fatalf("improving: got %d, want 9", result.Primary.ImprovingParameter)
	}
	if result.Primary.WorseningParameter != 1 {
		t.Fatalf("worsening: got %d, want 1", result.Primary.WorseningParameter)
	}
	if result.Primary.ConfidenceScore != 1.0 {
		t.Fatalf("confidence: got %v, want 1.0", result.Primary.ConfidenceScore)
	}
}

func TestIdentifyConfidenceBounds(t *testing.T) {
	id := newIdentifier(t)
	texts := []string{
		"We must increase the speed but it increases weight of the assembly",
		"improve strength however it causes more expensive production",
		"make the device faster at the cost of higher temperature",
	}
	for _, text := range texts {
		for _, c := range id.Identify(text).Contradictions {
			if c.ConfidenceScore < 0 || c.ConfidenceScore > 1 {
				t.Fatalf("confidence out of bounds: %v for %q", c.ConfidenceScore, text)
			}
		}
	}
}

func TestIdentifyNoMatchIsEmptyNotError(t *testing.T) {
	id := newIdentifier(t)
	for _, text := range []string{"", "zzz qqq xxx", "the the the"} {
		result := id.Identify(text)
		if result.Primary != nil {
			t.Fatalf("unexpected primary for %q: %+v", text, result.Primary)
		}
		if len(result.Contradictions) != 0 {
			t.Fatalf("expected no contradictions for %q", text)
		}
		if result.Alternatives == nil {
			t.Fatalf("alternatives must be an empty slice, got nil for %q", text)
		}
	}
}

func TestIdentifyRankingIsDescending(t *testing.T) {
	id := newIdentifier(t)
	result := id.Identify("We must increase the speed but it increases weight of the assembly")
	for i := 1; i < len(result.Contradictions); i++ {
		if result.Contradictions[i].ConfidenceScore > result.Contradictions[i-1].ConfidenceScore {
			t.Fatal("contradictions not sorted by descending confidence")
		}
	}
	for _, alt := range result.Alternatives {
		if alt.ConfidenceScore <= alternativeAbove {
			t.Fatalf("alternative below threshold: %v", alt.ConfidenceScore)
		}
	}
}

func TestKeywordSetsBuiltOnce(t *testing.T) {
	id := newIdentifier(t)
	if len(id.keywords) != knowledge.ParameterCount {
		t.Fatalf("keyword sets: got %d, want %d", len(id.keywords), knowledge.ParameterCount)
	}
	for pid, words := range id.keywords {
		for word := range words {
			if len(word) <= 2 {
				t.Fatalf("parameter %d keeps short token %q", pid, word)
			}
			if stopWords[word] {
				t.Fatalf("parameter %d keeps stop word %q", pid, word)
			}
		}
	}
}
