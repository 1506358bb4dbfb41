// Package adaptation tailors solution concepts to an organization's budget,
// timeline, expertise, and industry context.
package adaptation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trizworks/triz-engine/internal/concept"
)

// Context describes the organization the concepts are adapted for. Field
// values are matched case-insensitively against the buckets noted in the
// comments.
type Context struct {
	Industry               string   `json:"industry"`
	CompanySize            string   `json:"company_size"`        // startup, sme, enterprise
	BudgetLevel            string   `json:"budget_level"`        // low, medium, high
	Timeline               string   `json:"timeline"`            // short, medium, long
	TechnicalExpertise     string   `json:"technical_expertise"` // low, medium, high
	RiskTolerance          string   `json:"risk_tolerance"`      // conservative, moderate, aggressive
	ExistingInfrastructure []string `json:"existing_infrastructure"`
	RegulatoryConstraints  []string `json:"regulatory_constraints"`
	MarketRequirements     []string `json:"market_requirements"`
}

func (c Context) budget() string      { return strings.ToLower(c.BudgetLevel) }
func (c Context) timeline() string    { return strings.ToLower(c.Timeline) }
func (c Context) expertise() string   { return strings.ToLower(c.TechnicalExpertise) }
func (c Context) companySize() string { return strings.ToLower(c.CompanySize) }
func (c Context) industry() string    { return strings.ToLower(c.Industry) }
func (c Context) risk() string        { return strings.ToLower(c.RiskTolerance) }

type AdaptedConcept struct {
	OriginalConceptID       string            `json:"original_concept_id"`
	AdaptedTitle            string            `json:"adapted_title"`
	AdaptedDescription      string            `json:"adapted_description"`
	ContextualModifications []string          `json:"contextual_modifications"`
	ImplementationRoadmap   []string          `json:"implementation_roadmap"`
	ResourceRequirements    map[string]string `json:"resource_requirements"`
	RiskAssessment          map[string]string `json:"risk_assessment"`
	SuccessMetrics          []string          `json:"success_metrics"`
	AdaptationConfidence    float64           `json:"adaptation_confidence"`
}

type Result struct {
	AdaptedConcepts    []AdaptedConcept `json:"adapted_concepts"`
	Recommended        *AdaptedConcept  `json:"recommended_concept"`
	Strategy           string           `json:"adaptation_strategy"`
	ContextualInsights []string         `json:"contextual_insights"`
}

const (
	baseConfidence      = 0.5
	mediumFieldBonus    = 0.2
	constraintPenalty   = 0.2
	minConfidence       = 0.1
	maxConfidence       = 1.0
	contextFitBonus     = 0.1
	startupRoadmapLimit = 4
	maxModifications    = 5
)

type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// Adapt tailors up to numAdaptations concepts to the context, in input
// order, and picks the recommended concept by context fit.
func (p *Planner) Adapt(concepts []concept.Concept, ctx Context, numAdaptations int) Result {
	if numAdaptations > len(concepts) {
		numAdaptations = len(concepts)
	}

	result := Result{
		Strategy:           adaptationStrategy(ctx),
		ContextualInsights: contextualInsights(ctx),
	}
	for i := 0; i < numAdaptations; i++ {
		result.AdaptedConcepts = append(result.AdaptedConcepts, adaptOne(concepts[i], ctx))
	}
	result.Recommended = recommend(result.AdaptedConcepts, ctx)
	return result
}

func adaptOne(c concept.Concept, ctx Context) AdaptedConcept {
	return AdaptedConcept{
		OriginalConceptID:       c.ID,
		AdaptedTitle:            adaptTitle(c.Title, ctx),
		AdaptedDescription:      adaptDescription(c.Description, ctx),
		ContextualModifications: contextualModifications(ctx),
		ImplementationRoadmap:   implementationRoadmap(ctx),
		ResourceRequirements:    resourceRequirements(ctx),
		RiskAssessment:          riskAssessment(ctx),
		SuccessMetrics:          successMetrics(ctx),
		AdaptationConfidence:    adaptationConfidence(c, ctx),
	}
}

// adaptTitle prefixes the title by the first matching context condition.
func adaptTitle(title string, ctx Context) string {
	switch {
	case ctx.budget() == "low":
		return "Budget-Friendly " + title
	case ctx.timeline() == "short":
		return "Quick-Implementation " + title
	case ctx.companySize() == "startup":
		return "Startup-Suitable " + title
	default:
		return "Enterprise " + title
	}
}

func adaptDescription(description string, ctx Context) string {
	switch {
	case ctx.budget() == "low":
		return description + " This adaptation focuses on cost-effective implementation using available resources."
	case ctx.expertise() == "low":
		return description + " This approach uses accessible technology and can leverage external expertise."
	case ctx.timeline() == "short":
		return description + " This implementation prioritizes quick deployment and immediate benefits."
	default:
		return description
	}
}

func contextualModifications(ctx Context) []string {
	var mods []string

	switch ctx.budget() {
	case "low":
		mods = append(mods,
			"Use off-the-shelf components instead of custom development",
			"Implement in phases to spread costs over time",
			"Leverage existing infrastructure and tools")
	case "high":
		mods = append(mods,
			"Incorporate premium materials for enhanced performance",
			"Invest in custom development for optimal results",
			"Include comprehensive testing and validation")
	}

	switch ctx.timeline() {
	case "short":
		mods = append(mods,
			"Prioritize quick wins and immediate benefits",
			"Use proven technologies to minimize development time",
			"Implement with minimal customization initially")
	case "long":
		mods = append(mods,
			"Include thorough research and development phase",
			"Plan for extensive testing and validation",
			"Consider breakthrough innovations that require more time")
	}

	switch ctx.expertise() {
	case "low":
		mods = append(mods,
			"Partner with external experts for complex aspects",
			"Use simplified versions of advanced technologies",
			"Include comprehensive training and documentation")
	case "high":
		mods = append(mods,
			"Leverage internal expertise for custom optimization",
			"Explore advanced variations of the core concept",
			"Include research components for further innovation")
	}

	if len(mods) > maxModifications {
		mods = mods[:maxModifications]
	}
	return mods
}

func implementationRoadmap(ctx Context) []string {
	var roadmap []string
	switch ctx.timeline() {
	case "short":
		roadmap = []string{
			"1. Quick assessment and resource acquisition (1-2 weeks)",
			"2. Rapid prototyping and initial testing (2-4 weeks)",
			"3. Immediate deployment with basic optimization (1-2 weeks)",
			"4. Performance monitoring and quick iterations (ongoing)",
		}
	case "long":
		roadmap = []string{
			"1. Comprehensive capability and resource assessment (2-4 weeks)",
			"2. Detailed planning and specification development (3-6 weeks)",
			"3. Extensive prototyping with multiple iterations (8-12 weeks)",
			"4. Thorough testing and validation across scenarios (6-8 weeks)",
			"5. Phased deployment with monitoring (4-6 weeks)",
			"6. Continuous optimization and enhancement (ongoing)",
		}
	default:
		roadmap = []string{
			"1. Assess current capabilities and resources",
			"2. Acquire necessary materials and components",
			"3. Develop prototype or pilot implementation",
			"4. Test and validate the solution",
			"5. Deploy and monitor performance",
			"6. Optimize based on real-world feedback",
		}
	}

	if ctx.budget() == "low" {
		for i, step := range roadmap {
			step = strings.ReplaceAll(step, "comprehensive", "focused")
			step = strings.ReplaceAll(step, "extensive", "targeted")
			roadmap[i] = step
		}
	}
	return roadmap
}

func resourceRequirements(ctx Context) map[string]string {
	req := map[string]string{}

	switch ctx.budget() {
	case "low":
		req["financial"] = "Minimal investment required - leverage existing resources"
	case "medium":
		req["financial"] = "Moderate investment - some new equipment or materials needed"
	default:
		req["financial"] = "Significant investment - custom development and premium components"
	}

	switch ctx.timeline() {
	case "short":
		req["time"] = "1-3 months for initial implementation"
	case "medium":
		req["time"] = "3-6 months for full implementation"
	default:
		req["time"] = "6-12 months for complete development and deployment"
	}

	switch ctx.expertise() {
	case "low":
		req["expertise"] = "External consultation recommended for complex aspects"
	case "medium":
		req["expertise"] = "Internal team can handle most aspects with some training"
	default:
		req["expertise"] = "Internal expertise sufficient for full implementation"
	}

	if len(ctx.ExistingInfrastructure) > 0 {
		listed := ctx.ExistingInfrastructure
		if len(listed) > 3 {
			listed = listed[:3]
		}
		req["infrastructure"] = "Can leverage: " + strings.Join(listed, ", ")
	} else {
		req["infrastructure"] = "New infrastructure investment may be required"
	}
	return req
}

func riskAssessment(ctx Context) map[string]string {
	risks := map[string]string{}

	if ctx.expertise() == "low" {
		risks["technical"] = "Medium - Limited internal expertise may require external support"
	} else {
		risks["technical"] = "Low - Sufficient expertise to manage implementation"
	}

	switch ctx.budget() {
	case "low":
		risks["financial"] = "Low - Minimal financial exposure"
	case "high":
		risks["financial"] = "Medium - Significant investment with potential overruns"
	default:
		risks["financial"] = "Low - Moderate investment with controlled budget"
	}

	switch ctx.timeline() {
	case "short":
		risks["timeline"] = "High - Aggressive schedule may compromise quality"
	case "long":
		risks["timeline"] = "Low - Ample time for proper development"
	default:
		risks["timeline"] = "Medium - Standard timeline with some flexibility"
	}

	if len(ctx.RegulatoryConstraints) > 0 {
		listed := ctx.RegulatoryConstraints
		if len(listed) > 2 {
			listed = listed[:2]
		}
		risks["regulatory"] = "Medium - Must address: " + strings.Join(listed, ", ")
	} else {
		risks["regulatory"] = "Low - No significant regulatory concerns"
	}
	return risks
}

func successMetrics(ctx Context) []string {
	metrics := []string{
		"Achievement of original performance objectives",
		"Implementation within budget constraints",
		"Deployment within specified timeline",
		"User satisfaction and acceptance",
	}

	switch ctx.industry() {
	case "automotive", "manufacturing":
		metrics = append(metrics, "Improvement in production efficiency or quality")
	case "medical", "healthcare":
		metrics = append(metrics, "Compliance with regulatory requirements and safety standards")
	case "energy", "environmental":
		metrics = append(metrics, "Reduction in environmental impact or energy consumption")
	}

	switch ctx.companySize() {
	case "startup":
		metrics = append(metrics, "Time to market and competitive advantage")
	case "enterprise":
		metrics = append(metrics, "Scalability and integration with existing systems")
	}
	return metrics
}

// adaptationConfidence starts from a base and rewards balanced "medium"
// context fields, then penalizes hard mismatches. The three medium bonuses
// stack past 1.0 before the clamp.
func adaptationConfidence(c concept.Concept, ctx Context) float64 {
	confidence := baseConfidence

	if ctx.budget() == "medium" {
		confidence += mediumFieldBonus
	}
	if ctx.timeline() == "medium" {
		confidence += mediumFieldBonus
	}
	if ctx.expertise() == "medium" {
		confidence += mediumFieldBonus
	}

	if ctx.budget() == "low" && c.EstimatedComplexity == concept.ComplexityHigh {
		confidence -= constraintPenalty
	}
	if ctx.timeline() == "short" && c.InnovationLevel == concept.InnovationBreakthrough {
		confidence -= constraintPenalty
	}

	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return confidence
}

func recommend(adapted []AdaptedConcept, ctx Context) *AdaptedConcept {
	if len(adapted) == 0 {
		return nil
	}

	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, 0, len(adapted))
	for i, c := range adapted {
		score := c.AdaptationConfidence
		switch {
		case ctx.companySize() == "startup" && len(c.ImplementationRoadmap) <= startupRoadmapLimit:
			score += contextFitBonus
		case ctx.companySize() == "enterprise" && strings.HasPrefix(c.RiskAssessment["technical"], "Low"):
			score += contextFitBonus
		}
		scores = append(scores, scored{index: i, score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	return &adapted[scores[0].index]
}

func adaptationStrategy(ctx Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Adaptation Strategy for %s %s Company:\n\n", ctx.CompanySize, ctx.Industry)

	switch ctx.budget() {
	case "low":
		b.WriteString("- Focus on cost-effective, incremental improvements\n")
		b.WriteString("- Leverage existing infrastructure and expertise\n")
		b.WriteString("- Implement in phases to manage budget constraints\n")
	case "high":
		b.WriteString("- Invest in breakthrough innovations and custom solutions\n")
		b.WriteString("- Accept higher complexity for superior performance\n")
		b.WriteString("- Plan for comprehensive testing and validation\n")
	}

	switch ctx.timeline() {
	case "short":
		b.WriteString("- Prioritize quick wins and immediate benefits\n")
		b.WriteString("- Use proven technologies to minimize development time\n")
		b.WriteString("- Consider phased implementation for rapid deployment\n")
	case "long":
		b.WriteString("- Plan for thorough research and extensive testing\n")
		b.WriteString("- Include buffer time for unexpected challenges\n")
		b.WriteString("- Consider breakthrough innovations that require more time\n")
	}
	return b.String()
}

func contextualInsights(ctx Context) []string {
	var insights []string

	switch ctx.industry() {
	case "automotive":
		insights = append(insights, "Automotive industry emphasizes safety, reliability, and regulatory compliance")
	case "medical":
		insights = append(insights, "Healthcare applications require extensive validation and regulatory approval")
	case "energy":
		insights = append(insights, "Energy sector focuses on efficiency, sustainability, and long-term ROI")
	}

	switch ctx.companySize() {
	case "startup":
		insights = append(insights, "Startups should prioritize speed to market and competitive differentiation")
	case "enterprise":
		insights = append(insights, "Large organizations benefit from scalable solutions and integration capabilities")
	}

	switch ctx.risk() {
	case "conservative":
		insights = append(insights, "Conservative approach favors proven technologies and incremental improvements")
	case "aggressive":
		insights = append(insights, "Aggressive approach enables breakthrough innovations and competitive advantages")
	}
	return insights
}
