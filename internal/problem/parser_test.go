package problem

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseCarFuelStatement(t *testing.T) {
	p := NewParser()
	parsed := p.Parse("We need to make a car faster, but increasing engine power makes it consume more fuel.")

	if parsed.TechnicalSystem != "car" {
		t.Fatalf("technical system: got %q, want car", parsed.TechnicalSystem)
	}
	if parsed.DesiredImprovement != "faster" {
		t.Fatalf("desired improvement: got %q, want faster", parsed.DesiredImprovement)
	}
	if parsed.Context["domain"] != "automotive" {
		t.Fatalf("domain: got %q, want automotive", parsed.Context["domain"])
	}
	if parsed.UndesiredConsequence == "" {
		t.Fatal("expected a consequence after the connective")
	}
	if len(parsed.UndesiredConsequence) > 50 {
		t.Fatalf("consequence not truncated: %d chars", len(parsed.UndesiredConsequence))
	}
}

func TestParseEmptyInput(t *testing.T) {
	parsed := NewParser().Parse("")

	if parsed.TechnicalSystem != "" || parsed.DesiredImprovement != "" || parsed.UndesiredConsequence != "" {
		t.Fatalf("expected empty extractions, got %+v", parsed)
	}
	if len(parsed.Constraints) != 0 {
		t.Fatalf("constraints: got %v, want empty", parsed.Constraints)
	}
	if !reflect.DeepEqual(parsed.Context, map[string]string{"domain": "general"}) {
		t.Fatalf("context: got %v", parsed.Context)
	}
}

func TestNormalizePreservesOriginal(t *testing.T) {
	raw := "  Improve   Product\tQuality  "
	parsed := NewParser().Parse(raw)
	if parsed.OriginalText != raw {
		t.Fatalf("original text mutated: %q", parsed.OriginalText)
	}
	if parsed.NormalizedDescription != "improve product quality" {
		t.Fatalf("normalized: got %q", parsed.NormalizedDescription)
	}
}

func TestImprovementVocabularyOrderWins(t *testing.T) {
	// "increase" precedes "better" in the vocabulary even though "better"
	// occurs first in the text.
	parsed := NewParser().Parse("a better machine that must increase throughput")
	if parsed.DesiredImprovement != "increase" {
		t.Fatalf("got %q, want increase (vocabulary order)", parsed.DesiredImprovement)
	}
}

func TestConstraintsCollectedNotDeduplicated(t *testing.T) {
	parsed := NewParser().Parse("run without overheating and without vibration, it cannot fail and must not stall, also without overheating")
	want := []string{"overheating", "vibration", "overheating", "stall", "fail"}
	if !reflect.DeepEqual(parsed.Constraints, want) {
		t.Fatalf("constraints: got %v, want %v", parsed.Constraints, want)
	}
}

func TestDomainPriority(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"the vehicle assembly machine", "automotive"},
		{"the manufacturing machine", "manufacturing"},
		{"a gardening tool", "general"},
	}
	for _, tc := range cases {
		if got := NewParser().Parse(tc.text).Context["domain"]; got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestConsequenceFirstConnectiveInListOrder(t *testing.T) {
	parsed := NewParser().Parse("improve output however the cost rises but slowly")
	// "but" precedes "however" in the keyword list, so it wins even though
	// "however" occurs first in the text.
	if parsed.UndesiredConsequence != "slowly" {
		t.Fatalf("consequence: got %q, want %q", parsed.UndesiredConsequence, "slowly")
	}
}

func TestConsequenceTruncationCountsCharacters(t *testing.T) {
	// Cyrillic runes are two bytes each; the 50-character limit must not
	// split one of them.
	parsed := NewParser().Parse("make the car faster but повышенный расход топлива и масса растёт")

	want := "повышенный расход топлива и масса растёт"
	if parsed.UndesiredConsequence != want {
		t.Fatalf("consequence: got %q, want %q", parsed.UndesiredConsequence, want)
	}
	if !utf8.ValidString(parsed.UndesiredConsequence) {
		t.Fatal("consequence is not valid UTF-8")
	}

	long := NewParser().Parse("improve speed but " + strings.Repeat("ё", 60))
	got := long.UndesiredConsequence
	if got != strings.Repeat("ё", 50) {
		t.Fatalf("consequence: got %d runes %q, want 50 ё runes", utf8.RuneCountInString(got), got)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated consequence is not valid UTF-8")
	}
}
