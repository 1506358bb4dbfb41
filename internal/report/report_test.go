package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/trizworks/triz-engine/internal/adaptation"
	"github.com/trizworks/triz-engine/internal/concept"
	"github.com/trizworks/triz-engine/internal/contradiction"
	"github.com/trizworks/triz-engine/internal/effects"
	"github.com/trizworks/triz-engine/internal/knowledge"
	"github.com/trizworks/triz-engine/internal/principle"
	"github.com/trizworks/triz-engine/internal/problem"
)

func fixedBuilder() *Builder {
	b := NewBuilder()
	b.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 30, 0, 0, time.UTC)
	}
	return b
}

func sampleInput() Input {
	primary := contradiction.Contradiction{
		ImprovingParameter:     9,
		ImprovingParameterName: "Speed",
		WorseningParameter:     19,
		WorseningParameterName: "Use of energy by moving object",
		ConfidenceScore:        0.85,
		Reasoning:              "Speed keywords matched against energy cost keywords.",
	}
	return Input{
		ProblemText: "We need to make a car faster, but increasing engine power makes it consume more fuel.",
		Problem: problem.Parsed{
			TechnicalSystem:    "car",
			DesiredImprovement: "faster",
			Constraints:        []string{"fuel"},
		},
		Contradictions: contradiction.Result{
			Primary:      &primary,
			Alternatives: []contradiction.Contradiction{{ImprovingParameter: 9, WorseningParameter: 1}},
		},
		Principles: []principle.SelectionResult{{
			Primary:      []principle.Recommendation{{PrincipleID: 15, PrincipleName: "Dynamics", RelevanceScore: 1.0}},
			Supporting:   []principle.Recommendation{{PrincipleID: 2, PrincipleName: "Taking Out", RelevanceScore: 0.6}},
			MatrixSource: principle.SourceMatrix,
		}},
		Effects: []effects.Recommendation{{
			Effect: knowledge.Effect{
				ID:                "thermoelectric",
				Name:              "Thermoelectric Effect",
				Category:          "Electrical",
				Applications:      []string{"Waste heat recovery", "Temperature sensors", "Portable refrigerators"},
				RelatedPrinciples: []int{22, 23, 35},
			},
			RelevanceScore: 0.55,
		}},
		Concepts: []concept.Concept{{
			ID:                  "concept_001",
			Title:               "Dynamics with Thermoelectric Effect",
			Description:         "Recover waste heat to offset energy use.",
			InnovationLevel:     concept.InnovationBreakthrough,
			EstimatedComplexity: concept.ComplexityMedium,
			Advantages:          []string{"Energy recovery"},
			ImplementationSteps: []string{"1. Assess waste heat sources"},
			DomainApplications:  []string{"Automotive", "Energy"},
		}},
		Adaptation: adaptation.Result{
			AdaptedConcepts: []adaptation.AdaptedConcept{{
				OriginalConceptID:    "concept_001",
				AdaptedTitle:         "Enterprise Dynamics with Thermoelectric Effect",
				AdaptationConfidence: 1.0,
				ResourceRequirements: map[string]string{"financial": "Moderate investment - some new equipment or materials needed"},
			}},
			Recommended: &adaptation.AdaptedConcept{
				AdaptedTitle:         "Enterprise Dynamics with Thermoelectric Effect",
				AdaptationConfidence: 1.0,
			},
		},
		Context: adaptation.Context{
			Industry:           "automotive",
			CompanySize:        "enterprise",
			BudgetLevel:        "medium",
			Timeline:           "medium",
			TechnicalExpertise: "medium",
		},
	}
}

func TestBuildSectionsInOrder(t *testing.T) {
	r := fixedBuilder().Build(sampleInput())

	wantTitles := []string{
		"Problem Analysis",
		"Technical Contradiction Analysis",
		"Recommended TRIZ Principles",
		"Scientific Effects Integration",
		"Solution Concepts",
		"Context-Adapted Solutions",
	}
	if len(r.Sections) != len(wantTitles) {
		t.Fatalf("got %d sections, want %d", len(r.Sections), len(wantTitles))
	}
	for i, want := range wantTitles {
		if r.Sections[i].Title != want {
			t.Errorf("section %d title = %q, want %q", i, r.Sections[i].Title, want)
		}
	}
}

func TestBuildReportID(t *testing.T) {
	r := fixedBuilder().Build(sampleInput())

	if !strings.HasPrefix(r.ID, "TRIZ_20260830_123000_") {
		t.Errorf("report id = %q, want TRIZ_20260830_123000_ prefix", r.ID)
	}
	if r.Timestamp != "2026-08-30 12:30:00" {
		t.Errorf("timestamp = %q", r.Timestamp)
	}
}

func TestBuildTruncatesLongProblemSummary(t *testing.T) {
	in := sampleInput()
	in.ProblemText = strings.Repeat("x", 250)

	r := fixedBuilder().Build(in)
	if len(r.ProblemSummary) != summaryMaxChars+3 || !strings.HasSuffix(r.ProblemSummary, "...") {
		t.Errorf("summary length = %d, want %d with ellipsis", len(r.ProblemSummary), summaryMaxChars+3)
	}

	// The limit is characters, so multibyte text is never cut mid-rune.
	in.ProblemText = strings.Repeat("é", 250)
	r = fixedBuilder().Build(in)
	if r.ProblemSummary != strings.Repeat("é", summaryMaxChars)+"..." {
		t.Errorf("summary = %q, want %d é runes with ellipsis", r.ProblemSummary, summaryMaxChars)
	}
	if !utf8.ValidString(r.ProblemSummary) {
		t.Error("summary is not valid UTF-8")
	}
}

func TestConclusionBranches(t *testing.T) {
	r := fixedBuilder().Build(sampleInput())

	if len(r.Conclusions) != 6 {
		t.Fatalf("got %d conclusions, want 6: %v", len(r.Conclusions), r.Conclusions)
	}
	if !strings.Contains(r.Conclusions[0], "Speed") {
		t.Errorf("first conclusion should name the contradiction: %q", r.Conclusions[0])
	}
	if !strings.Contains(r.Conclusions[1], "1 breakthrough concepts") {
		t.Errorf("second conclusion should count breakthroughs: %q", r.Conclusions[1])
	}
	if !strings.Contains(r.Conclusions[2], "100.0% adaptation confidence") {
		t.Errorf("third conclusion should give confidence: %q", r.Conclusions[2])
	}
}

func TestConclusionsWithoutContradiction(t *testing.T) {
	in := sampleInput()
	in.Contradictions = contradiction.Result{}
	in.Concepts = []concept.Concept{{InnovationLevel: concept.InnovationIncremental}}
	in.Adaptation.Recommended = nil

	r := fixedBuilder().Build(in)
	if len(r.Conclusions) != 4 {
		t.Fatalf("got %d conclusions, want 4: %v", len(r.Conclusions), r.Conclusions)
	}
	if r.Conclusions[0] != "Generated practical solution concepts with immediate applicability." {
		t.Errorf("first conclusion = %q", r.Conclusions[0])
	}
}

func TestNextStepsInsertions(t *testing.T) {
	ctx := adaptation.Context{Timeline: "short", BudgetLevel: "low"}

	steps := nextSteps(ctx)
	if len(steps) != 8 {
		t.Fatalf("got %d steps, want 8: %v", len(steps), steps)
	}
	if steps[1] != "- Focus on cost-effective implementation options" {
		t.Errorf("step 1 = %q", steps[1])
	}
	if steps[2] != "- Prioritize quick wins and immediate benefits" {
		t.Errorf("step 2 = %q", steps[2])
	}
}

func TestExportMarkdown(t *testing.T) {
	b := fixedBuilder()
	r := b.Build(sampleInput())

	md := b.Export(r, FormatMarkdown)
	for _, want := range []string{
		"# TRIZ Analysis Report",
		"**Report ID:** " + r.ID,
		"## Technical Contradiction Analysis",
		"## Recommended Next Steps",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	b := fixedBuilder()
	r := b.Build(sampleInput())

	out := b.Export(r, FormatJSON)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded["export_format"] != "json" {
		t.Errorf("export_format = %v", decoded["export_format"])
	}
	if decoded["export_timestamp"] == "" {
		t.Error("export_timestamp missing")
	}
	if decoded["report_id"] != r.ID {
		t.Errorf("report_id = %v, want %s", decoded["report_id"], r.ID)
	}
}

func TestExportHTML(t *testing.T) {
	b := fixedBuilder()
	r := b.Build(sampleInput())

	out := b.Export(r, FormatHTML)
	for _, want := range []string{
		"<!DOCTYPE html>",
		`class="section section-high"`,
		`class="section section-medium"`,
		"Report Metadata",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(out, "**Original Problem:**\n") {
		t.Error("section newlines should be converted to <br>")
	}
}

func TestExportUnknownFormatFallsBackToMarkdown(t *testing.T) {
	b := fixedBuilder()
	r := b.Build(sampleInput())

	if out := b.Export(r, "docx"); !strings.HasPrefix(out, "# TRIZ Analysis Report") {
		t.Errorf("unknown format should fall back to markdown, got %q", out[:40])
	}
}
