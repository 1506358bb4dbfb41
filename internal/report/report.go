// Package report assembles the full analysis into a structured report and
// exports it as Markdown, JSON, or HTML.
package report

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trizworks/triz-engine/internal/adaptation"
	"github.com/trizworks/triz-engine/internal/concept"
	"github.com/trizworks/triz-engine/internal/contradiction"
	"github.com/trizworks/triz-engine/internal/effects"
	"github.com/trizworks/triz-engine/internal/principle"
	"github.com/trizworks/triz-engine/internal/problem"
)

const (
	SectionAnalysis       = "analysis"
	SectionRecommendation = "recommendation"
	SectionImplementation = "implementation"

	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatHTML     = "html"
)

const summaryMaxChars = 200

type Section struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Type       string `json:"section_type"`
	Importance string `json:"importance"`
}

type Report struct {
	ID             string         `json:"report_id"`
	Timestamp      string         `json:"timestamp"`
	ProblemSummary string         `json:"problem_summary"`
	Sections       []Section      `json:"sections"`
	Conclusions    []string       `json:"conclusions"`
	NextSteps      []string       `json:"next_steps"`
	Metadata       map[string]any `json:"metadata"`
}

// Input gathers the upstream stage results the builder aggregates. All
// fields are read-only to the builder.
type Input struct {
	ProblemText    string
	Problem        problem.Parsed
	Contradictions contradiction.Result
	Principles     []principle.SelectionResult
	Effects        []effects.Recommendation
	Concepts       []concept.Concept
	Adaptation     adaptation.Result
	Context        adaptation.Context
}

type Builder struct {
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Build assembles the report. Section order is fixed: problem,
// contradiction, principles, effects, concepts, adaptation.
func (b *Builder) Build(in Input) Report {
	now := b.now()
	summary := in.ProblemText
	if runes := []rune(summary); len(runes) > summaryMaxChars {
		summary = string(runes[:summaryMaxChars]) + "..."
	}

	return Report{
		ID:             fmt.Sprintf("TRIZ_%s_%s", now.Format("20060102_150405"), uuid.NewString()[:8]),
		Timestamp:      now.Format("2006-01-02 15:04:05"),
		ProblemSummary: summary,
		Sections: []Section{
			problemSection(in.ProblemText, in.Problem),
			contradictionSection(in.Contradictions),
			principlesSection(in.Principles),
			effectsSection(in.Effects),
			conceptsSection(in.Concepts),
			adaptationSection(in.Adaptation, in.Context),
		},
		Conclusions: conclusions(in.Contradictions, in.Concepts, in.Adaptation),
		NextSteps:   nextSteps(in.Context),
		Metadata: map[string]any{
			"analysis_version":            "1.0",
			"pipeline_steps":              []string{"contradiction_id", "principle_selection", "effects_lookup", "concept_generation", "adaptation"},
			"total_principles_considered": len(in.Principles),
			"total_effects_considered":    len(in.Effects),
			"total_concepts_generated":    len(in.Concepts),
			"adaptation_context":          in.Context,
		},
	}
}

func problemSection(problemText string, parsed problem.Parsed) Section {
	system := valueOr(parsed.TechnicalSystem, "Not specified")
	improvement := valueOr(parsed.DesiredImprovement, "Not specified")
	constraints := "Not specified"
	if len(parsed.Constraints) > 0 {
		constraints = strings.Join(parsed.Constraints, ", ")
	}

	var c strings.Builder
	fmt.Fprintf(&c, "**Original Problem:**\n%s\n\n", problemText)
	fmt.Fprintf(&c, "**Technical System:** %s\n", system)
	fmt.Fprintf(&c, "**Desired Improvement:** %s\n", improvement)
	fmt.Fprintf(&c, "**Key Constraints:** %s\n\n", constraints)
	c.WriteString("**Problem Classification:** Technical contradiction identified and analyzed using TRIZ methodology.")

	return Section{
		Title:      "Problem Analysis",
		Content:    c.String(),
		Type:       SectionAnalysis,
		Importance: ImportanceHigh,
	}
}

func contradictionSection(result contradiction.Result) Section {
	var c strings.Builder
	if result.Primary == nil {
		c.WriteString("No clear technical contradiction identified.")
	} else {
		fmt.Fprintf(&c, "**Primary Contradiction:**\n")
		fmt.Fprintf(&c, "- **Improving Parameter:** %s\n", result.Primary.ImprovingParameterName)
		fmt.Fprintf(&c, "- **Worsening Parameter:** %s\n", result.Primary.WorseningParameterName)
		fmt.Fprintf(&c, "- **Confidence Score:** %.2f\n\n", result.Primary.ConfidenceScore)
		fmt.Fprintf(&c, "**Analysis Reasoning:**\n%s\n\n", valueOr(result.Primary.Reasoning, "Systematic TRIZ analysis performed."))
		fmt.Fprintf(&c, "**Alternative Contradictions:**\n%d additional contradictions identified for consideration.", len(result.Alternatives))
	}

	return Section{
		Title:      "Technical Contradiction Analysis",
		Content:    c.String(),
		Type:       SectionAnalysis,
		Importance: ImportanceHigh,
	}
}

func principlesSection(results []principle.SelectionResult) Section {
	var c strings.Builder
	if len(results) == 0 {
		c.WriteString("No principle recommendations generated.")
	}
	for i, result := range results {
		fmt.Fprintf(&c, "### Principle Set %d\n\n", i+1)
		fmt.Fprintf(&c, "**Primary Principles:**\n%s\n\n", formatPrinciples(result.Primary))
		fmt.Fprintf(&c, "**Supporting Principles:**\n%s\n\n", formatPrinciples(result.Supporting))
		fmt.Fprintf(&c, "**Source:** %s\n\n", result.MatrixSource)
	}

	return Section{
		Title:      "Recommended TRIZ Principles",
		Content:    c.String(),
		Type:       SectionRecommendation,
		Importance: ImportanceHigh,
	}
}

const maxReportEffects = 5

func effectsSection(recs []effects.Recommendation) Section {
	var c strings.Builder
	if len(recs) == 0 {
		c.WriteString("No scientific effects identified for this solution.")
	}
	if len(recs) > maxReportEffects {
		recs = recs[:maxReportEffects]
	}
	for _, rec := range recs {
		apps := rec.Effect.Applications
		if len(apps) > 2 {
			apps = apps[:2]
		}
		related := rec.Effect.RelatedPrinciples
		if len(related) > 3 {
			related = related[:3]
		}
		refs := make([]string, 0, len(related))
		for _, pid := range related {
			refs = append(refs, fmt.Sprintf("#%d", pid))
		}

		fmt.Fprintf(&c, "**%s**\n", rec.Effect.Name)
		fmt.Fprintf(&c, "- **Category:** %s\n", rec.Effect.Category)
		fmt.Fprintf(&c, "- **Relevance:** %.2f\n", rec.RelevanceScore)
		fmt.Fprintf(&c, "- **Applications:** %s\n", strings.Join(apps, ", "))
		fmt.Fprintf(&c, "- **Related Principles:** %s\n\n", strings.Join(refs, ", "))
	}

	return Section{
		Title:      "Scientific Effects Integration",
		Content:    c.String(),
		Type:       SectionAnalysis,
		Importance: ImportanceMedium,
	}
}

const maxReportConcepts = 3

func conceptsSection(concepts []concept.Concept) Section {
	var c strings.Builder
	if len(concepts) == 0 {
		c.WriteString("No solution concepts generated.")
	}
	if len(concepts) > maxReportConcepts {
		concepts = concepts[:maxReportConcepts]
	}
	for _, item := range concepts {
		fmt.Fprintf(&c, "### %s\n\n", item.Title)
		fmt.Fprintf(&c, "**Concept ID:** %s\n", item.ID)
		fmt.Fprintf(&c, "**Innovation Level:** %s\n", valueOr(item.InnovationLevel, "Not assessed"))
		fmt.Fprintf(&c, "**Complexity:** %s\n\n", valueOr(item.EstimatedComplexity, "Not assessed"))
		fmt.Fprintf(&c, "**Description:**\n%s\n\n", item.Description)
		fmt.Fprintf(&c, "**Key Advantages:**\n%s\n\n", formatList(item.Advantages))
		fmt.Fprintf(&c, "**Implementation Steps:**\n%s\n\n", formatList(item.ImplementationSteps))
		fmt.Fprintf(&c, "**Applicable Domains:** %s\n\n", strings.Join(item.DomainApplications, ", "))
	}

	return Section{
		Title:      "Solution Concepts",
		Content:    c.String(),
		Type:       SectionRecommendation,
		Importance: ImportanceHigh,
	}
}

func adaptationSection(result adaptation.Result, ctx adaptation.Context) Section {
	var c strings.Builder
	c.WriteString("**Adaptation Context:**\n")
	fmt.Fprintf(&c, "- **Industry:** %s\n", valueOr(ctx.Industry, "Not specified"))
	fmt.Fprintf(&c, "- **Company Size:** %s\n", valueOr(ctx.CompanySize, "Not specified"))
	fmt.Fprintf(&c, "- **Budget Level:** %s\n", valueOr(ctx.BudgetLevel, "Not specified"))
	fmt.Fprintf(&c, "- **Timeline:** %s\n", valueOr(ctx.Timeline, "Not specified"))
	fmt.Fprintf(&c, "- **Technical Expertise:** %s\n\n", valueOr(ctx.TechnicalExpertise, "Not specified"))

	if len(result.AdaptedConcepts) > 0 {
		c.WriteString("**Adapted Concepts:**\n")
		for _, adapted := range result.AdaptedConcepts {
			mods := adapted.ContextualModifications
			if len(mods) > 3 {
				mods = mods[:3]
			}
			fmt.Fprintf(&c, "**%s**\n", adapted.AdaptedTitle)
			fmt.Fprintf(&c, "- **Confidence:** %.2f\n", adapted.AdaptationConfidence)
			fmt.Fprintf(&c, "- **Key Modifications:** %s\n", strings.Join(mods, ", "))
			fmt.Fprintf(&c, "- **Resource Requirements:** %s\n\n", valueOr(adapted.ResourceRequirements["financial"], "Not assessed"))
		}
	}

	return Section{
		Title:      "Context-Adapted Solutions",
		Content:    c.String(),
		Type:       SectionImplementation,
		Importance: ImportanceMedium,
	}
}

func formatPrinciples(recs []principle.Recommendation) string {
	if len(recs) == 0 {
		return "None identified"
	}
	lines := make([]string, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, fmt.Sprintf("- **Principle %d**: %s (Score: %.2f)", rec.PrincipleID, rec.PrincipleName, rec.RelevanceScore))
	}
	return strings.Join(lines, "\n")
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func conclusions(contradictions contradiction.Result, concepts []concept.Concept, adapted adaptation.Result) []string {
	var out []string

	if primary := contradictions.Primary; primary != nil {
		out = append(out, fmt.Sprintf(
			"The primary technical contradiction between %s and %s has been systematically addressed.",
			valueOr(primary.ImprovingParameterName, "improvement"),
			valueOr(primary.WorseningParameterName, "constraint")))
	}

	if len(concepts) > 0 {
		breakthroughs := 0
		for _, c := range concepts {
			if c.InnovationLevel == concept.InnovationBreakthrough {
				breakthroughs++
			}
		}
		if breakthroughs > 0 {
			out = append(out, fmt.Sprintf("Generated %d breakthrough concepts with high innovation potential.", breakthroughs))
		} else {
			out = append(out, "Generated practical solution concepts with immediate applicability.")
		}
	}

	if adapted.Recommended != nil {
		out = append(out, fmt.Sprintf("Recommended concept '%s' with %.1f%% adaptation confidence.",
			adapted.Recommended.AdaptedTitle, adapted.Recommended.AdaptationConfidence*100))
	}

	out = append(out,
		"TRIZ methodology provides systematic approach to inventive problem solving.",
		"Scientific effects integration enhances solution creativity and feasibility.",
		"Context adaptation ensures practical implementation within constraints.")
	return out
}

func nextSteps(ctx adaptation.Context) []string {
	steps := []string{
		"1. Review the recommended solution concept in detail",
		"2. Assess resource requirements and timeline feasibility",
		"3. Develop detailed implementation plan with milestones",
		"4. Create prototype or pilot program",
		"5. Test and validate the solution in real-world conditions",
		"6. Monitor performance and iterate as needed",
	}

	insert := func(step string) {
		steps = append(steps[:1], append([]string{step}, steps[1:]...)...)
	}
	if strings.EqualFold(ctx.Timeline, "short") {
		insert("- Prioritize quick wins and immediate benefits")
	}
	if strings.EqualFold(ctx.BudgetLevel, "low") {
		insert("- Focus on cost-effective implementation options")
	}
	return steps
}

// Export renders the report in the requested format. Unknown formats fall
// back to Markdown.
func (b *Builder) Export(r Report, format string) string {
	switch format {
	case FormatJSON:
		return b.exportJSON(r)
	case FormatHTML:
		return exportHTML(r)
	default:
		return exportMarkdown(r)
	}
}

func exportMarkdown(r Report) string {
	var c strings.Builder
	c.WriteString("# TRIZ Analysis Report\n\n")
	fmt.Fprintf(&c, "**Report ID:** %s\n", r.ID)
	fmt.Fprintf(&c, "**Generated:** %s\n", r.Timestamp)
	c.WriteString("**Analysis Method:** Systematic TRIZ Methodology\n\n---\n\n")

	for _, section := range r.Sections {
		fmt.Fprintf(&c, "## %s\n\n%s\n\n", section.Title, section.Content)
	}

	c.WriteString("## Conclusions and Recommendations\n\n")
	for _, conclusion := range r.Conclusions {
		fmt.Fprintf(&c, "- %s\n", conclusion)
	}
	c.WriteString("\n## Recommended Next Steps\n\n")
	for _, step := range r.NextSteps {
		fmt.Fprintf(&c, "%s\n", step)
	}

	c.WriteString("\n---\n\n")
	c.WriteString("*This report was generated using systematic TRIZ methodology combined with automated analysis.*\n")
	fmt.Fprintf(&c, "*Report ID: %s | Generated: %s*\n", r.ID, r.Timestamp)
	return c.String()
}

type jsonExport struct {
	Report
	ExportFormat    string `json:"export_format"`
	ExportTimestamp string `json:"export_timestamp"`
}

func (b *Builder) exportJSON(r Report) string {
	payload := jsonExport{
		Report:          r,
		ExportFormat:    FormatJSON,
		ExportTimestamp: b.now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Report contents are plain strings and maps; marshal cannot fail
		// short of a programming error.
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

const htmlStylesheet = `        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 40px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px; margin-bottom: 30px; }
        .section { margin-bottom: 30px; padding: 20px; background: #f9f9f9; border-radius: 8px; }
        .section-high { border-left: 5px solid #ff6b6b; }
        .section-medium { border-left: 5px solid #ffd93d; }
        .section-low { border-left: 5px solid #6bcf7f; }
        h1 { margin: 0; font-size: 2.5em; }
        h2 { color: #333; border-bottom: 2px solid #667eea; padding-bottom: 10px; }
        .metadata { background: #e3f2fd; padding: 15px; border-radius: 5px; margin-top: 20px; }`

func exportHTML(r Report) string {
	var c strings.Builder
	c.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	c.WriteString("    <meta charset=\"UTF-8\">\n")
	c.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&c, "    <title>TRIZ Report - %s</title>\n", html.EscapeString(r.ID))
	fmt.Fprintf(&c, "    <style>\n%s\n    </style>\n</head>\n<body>\n", htmlStylesheet)

	c.WriteString("    <div class=\"header\">\n")
	c.WriteString("        <h1>TRIZ Analysis Report</h1>\n")
	fmt.Fprintf(&c, "        <p><strong>Report ID:</strong> %s</p>\n", html.EscapeString(r.ID))
	fmt.Fprintf(&c, "        <p><strong>Generated:</strong> %s</p>\n", html.EscapeString(r.Timestamp))
	c.WriteString("    </div>\n\n")

	for _, section := range r.Sections {
		fmt.Fprintf(&c, "    <div class=\"section section-%s\">\n", section.Importance)
		fmt.Fprintf(&c, "        <h2>%s</h2>\n", html.EscapeString(section.Title))
		content := strings.ReplaceAll(html.EscapeString(section.Content), "\n", "<br>")
		fmt.Fprintf(&c, "        <div>%s</div>\n", content)
		c.WriteString("    </div>\n\n")
	}

	metadata, err := json.MarshalIndent(r.Metadata, "", "  ")
	if err != nil {
		metadata = []byte("{}")
	}
	c.WriteString("    <div class=\"metadata\">\n")
	c.WriteString("        <h3>Report Metadata</h3>\n")
	fmt.Fprintf(&c, "        <pre>%s</pre>\n", html.EscapeString(string(metadata)))
	c.WriteString("    </div>\n</body>\n</html>")
	return c.String()
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
