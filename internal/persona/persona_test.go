package persona

import (
	"strings"
	"testing"
)

func TestSystemPromptStructure(t *testing.T) {
	m := NewManager()
	prompt := m.SystemPrompt()

	for _, want := range []string{
		"You are Heinrich",
		"CORE IDENTITY:",
		"THINKING STYLE:",
		"COMMUNICATION STYLE:",
		"CORE VALUES:",
		"EXPERTISE AREAS:",
		"BEHAVIORAL GUIDELINES:",
		"RESPONSE FORMAT:",
		"39 TRIZ parameters",
		"40 inventive principles",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if prompt != m.SystemPrompt() {
		t.Error("system prompt should be deterministic")
	}
}

func TestTemplates(t *testing.T) {
	m := NewManager()
	if !strings.Contains(m.Greeting(), "I'm Heinrich") {
		t.Errorf("greeting = %q", m.Greeting())
	}
	if !strings.Contains(m.AnalysisIntro(), "Step 1: Problem Decomposition") {
		t.Error("analysis intro missing first step")
	}
	if !strings.Contains(m.UncertaintyStatement(), "not an exact science") {
		t.Error("uncertainty statement missing caveat")
	}
	if !strings.Contains(m.Encouragement(), "breakthrough insights") {
		t.Error("encouragement missing closing thought")
	}
}

func TestExplainPrinciple(t *testing.T) {
	m := NewManager()
	got := m.ExplainPrinciple(15, "Dynamics", "resolves the speed contradiction",
		"make the system adjustable", "adaptive wing geometry", "Aerospace")

	for _, want := range []string{
		"**The Principle:** Dynamics (Principle #15)",
		"**Why it applies:** resolves the speed contradiction",
		"**How it works:** make the system adjustable",
		"**Example application:** adaptive wing geometry",
		"used in Aerospace to solve similar challenges.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("explanation missing %q", want)
		}
	}
}

func TestValidateConsistency(t *testing.T) {
	m := NewManager()
	cases := []struct {
		text string
		want bool
	}{
		{"The TRIZ principle of segmentation applies here.", true},
		{"A systematic look at the contradiction between speed and energy.", true},
		{"Just try harder.", false},
		{"This mentions principle once only.", false},
	}
	for _, tc := range cases {
		if got := m.ValidateConsistency(tc.text); got != tc.want {
			t.Errorf("ValidateConsistency(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	m := NewManager()
	s := m.Summary()
	if s["name"] != "Heinrich" {
		t.Errorf("name = %v", s["name"])
	}
	if s["core_values_count"] != 6 {
		t.Errorf("core_values_count = %v", s["core_values_count"])
	}
	if s["expertise_areas_count"] != 8 {
		t.Errorf("expertise_areas_count = %v", s["expertise_areas_count"])
	}
}

func TestAdaptForContext(t *testing.T) {
	m := NewManager()

	got := m.AdaptForContext("Medical", "low")
	if !strings.Contains(got, "regulatory compliance") {
		t.Error("medical adaptation missing")
	}
	if !strings.Contains(got, "simpler analogies") {
		t.Error("low-expertise adaptation missing")
	}

	got = m.AdaptForContext("aerospace", "high")
	if !strings.Contains(got, "reliability and performance") {
		t.Error("aerospace adaptation missing")
	}
	if !strings.Contains(got, "advanced TRIZ concepts") {
		t.Error("high-expertise adaptation missing")
	}

	// Unknown industry and medium expertise add no extra bullets.
	got = m.AdaptForContext("retail", "medium")
	if strings.Count(got, "- ") != 0 {
		t.Errorf("unexpected adaptations: %q", got)
	}
}
