// Package concept turns principle and effect recommendations into concrete
// solution concepts with implementation guidance.
package concept

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/trizworks/triz-engine/internal/knowledge"
)

type Concept struct {
	ID                  string   `json:"concept_id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	PrinciplesUsed      []int    `json:"principles_used"`
	EffectsUsed         []string `json:"effects_used"`
	ImplementationSteps []string `json:"implementation_steps"`
	Advantages          []string `json:"advantages"`
	PotentialChallenges []string `json:"potential_challenges"`
	DomainApplications  []string `json:"domain_applications"`
	EstimatedComplexity string   `json:"estimated_complexity"`
	InnovationLevel     string   `json:"innovation_level"`
}

type Result struct {
	Concepts     []Concept         `json:"concepts"`
	Primary      *Concept          `json:"primary_concept"`
	Alternatives []Concept         `json:"alternative_concepts"`
	Metadata     map[string]string `json:"generation_metadata"`
}

// ProblemContext carries the parsed-problem fields the generator templates
// interpolate. Zero values fall back to generic wording.
type ProblemContext struct {
	TechnicalSystem    string
	DesiredImprovement string
	Constraint         string
}

const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"

	InnovationIncremental  = "Incremental"
	InnovationRadical      = "Radical"
	InnovationBreakthrough = "Breakthrough"
)

// TitleSelector picks one title from a non-empty candidate list. The
// default selector is deterministic so repeated runs on the same input
// produce identical reports.
type TitleSelector interface {
	Pick(candidates []string) string
}

// RoundRobinTitles cycles through the candidate list across calls.
type RoundRobinTitles struct {
	next int
}

func (r *RoundRobinTitles) Pick(candidates []string) string {
	title := candidates[r.next%len(candidates)]
	r.next++
	return title
}

// RandomTitles picks uniformly using a seeded source.
type RandomTitles struct {
	rng *rand.Rand
}

func NewRandomTitles(seed int64) *RandomTitles {
	return &RandomTitles{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomTitles) Pick(candidates []string) string {
	return candidates[r.rng.Intn(len(candidates))]
}

type Generator struct {
	titles TitleSelector
}

func NewGenerator(titles TitleSelector) *Generator {
	if titles == nil {
		titles = &RoundRobinTitles{}
	}
	return &Generator{titles: titles}
}

// Generate pairs principles with effects in a cycling pattern and builds up
// to numConcepts concepts, capped by the number of distinct pairings.
// Concepts are ranked by innovation potential; the first becomes the
// primary concept.
func (g *Generator) Generate(principles []knowledge.Principle, effects []knowledge.Effect, ctx ProblemContext, numConcepts int) Result {
	result := Result{
		Metadata: map[string]string{
			"total_principles":  fmt.Sprintf("%d", len(principles)),
			"total_effects":     fmt.Sprintf("%d", len(effects)),
			"generation_method": "principle_effect_combination",
		},
	}
	if len(principles) == 0 || len(effects) == 0 || numConcepts <= 0 {
		result.Metadata["concepts_generated"] = "0"
		return result
	}

	limit := numConcepts
	if pairings := len(principles) * len(effects); pairings < limit {
		limit = pairings
	}
	for i := 0; i < limit; i++ {
		p := principles[i%len(principles)]
		e := effects[i%len(effects)]
		result.Concepts = append(result.Concepts, g.build(p, e, ctx, i+1))
	}

	sort.SliceStable(result.Concepts, func(i, j int) bool {
		return innovationPotential(result.Concepts[i]) > innovationPotential(result.Concepts[j])
	})

	result.Primary = &result.Concepts[0]
	result.Alternatives = result.Concepts[1:]
	result.Metadata["concepts_generated"] = fmt.Sprintf("%d", len(result.Concepts))
	return result
}

func (g *Generator) build(p knowledge.Principle, e knowledge.Effect, ctx ProblemContext, number int) Concept {
	return Concept{
		ID:                  fmt.Sprintf("concept_%03d", number),
		Title:               g.title(p.Name, e.Name),
		Description:         describe(p, e, ctx),
		PrinciplesUsed:      []int{p.ID},
		EffectsUsed:         []string{e.ID},
		ImplementationSteps: implementationSteps(p, e),
		Advantages:          advantages(p, e),
		PotentialChallenges: challenges(p, e),
		DomainApplications:  applicableDomains(p, e, ctx),
		EstimatedComplexity: assessComplexity(p, e),
		InnovationLevel:     assessInnovationLevel(p, e),
	}
}

func (g *Generator) title(principleName, effectName string) string {
	candidates := []string{
		fmt.Sprintf("%s with %s", principleName, effectName),
		fmt.Sprintf("%s-Enhanced %s", effectName, principleName),
		fmt.Sprintf("Dynamic %s using %s", principleName, effectName),
		fmt.Sprintf("Adaptive %s via %s", principleName, effectName),
		fmt.Sprintf("Smart %s through %s", principleName, effectName),
	}
	return g.titles.Pick(candidates)
}

func describe(p knowledge.Principle, e knowledge.Effect, ctx ProblemContext) string {
	system := ctx.TechnicalSystem
	if system == "" {
		system = "the system"
	}
	improvement := ctx.DesiredImprovement
	if improvement == "" {
		improvement = "performance"
	}
	constraint := ctx.Constraint
	if constraint == "" {
		constraint = "constraints"
	}

	var b strings.Builder
	switch {
	case p.ID == 15:
		fmt.Fprintf(&b, "This concept applies dynamic %s to %s, utilizing the %s to achieve %s while respecting %s. The %s enables real-time adaptation ",
			strings.ToLower(p.Name), system, e.Name, improvement, constraint, strings.ToLower(e.Name))
	case p.ID == 1 || p.ID == 2 || p.ID == 3:
		fmt.Fprintf(&b, "This approach uses %s to separate conflicting requirements in %s. By leveraging %s, we can achieve %s without compromising other aspects. ",
			strings.ToLower(p.Name), system, e.Name, improvement)
	default:
		fmt.Fprintf(&b, "This innovative solution combines %s with the %s to address the core contradiction. The concept enables %s while maintaining %s. ",
			p.Name, e.Name, improvement, constraint)
	}

	if len(e.Applications) > 0 {
		fmt.Fprintf(&b, "Similar to how %s is used in %s, this concept adapts the principle for %s applications.",
			strings.ToLower(e.Name), strings.ToLower(e.Applications[0]), system)
	}
	return b.String()
}

func implementationSteps(p knowledge.Principle, e knowledge.Effect) []string {
	return []string{
		fmt.Sprintf("1. Analyze the current %s limitations in your system", strings.ToLower(p.Name)),
		fmt.Sprintf("2. Identify specific areas where %s can be applied", e.Name),
		fmt.Sprintf("3. Design the integration mechanism for %s and %s", p.Name, e.Name),
		"4. Prototype the combined solution at small scale",
		fmt.Sprintf("5. Test and validate the %s response", e.Name),
		fmt.Sprintf("6. Optimize the %s parameters", strings.ToLower(p.Name)),
		"7. Scale up for full implementation",
	}
}

const maxAdvantages = 5

func advantages(p knowledge.Principle, e knowledge.Effect) []string {
	var out []string

	switch p.ID {
	case 15:
		out = append(out,
			"Adaptive response to changing conditions",
			"Optimal performance across operating range",
			"Reduced need for manual adjustments")
	case 1:
		out = append(out,
			"Modular design enables easy maintenance",
			"Independent optimization of components",
			"Fault isolation and graceful degradation")
	case 35:
		out = append(out,
			"Multi-state operation capabilities",
			"Phase-based functionality",
			"Enhanced system flexibility")
	}

	effectName := strings.ToLower(e.Name)
	if strings.Contains(effectName, "thermal") {
		out = append(out, "Temperature-responsive behavior")
	}
	if strings.Contains(effectName, "piezo") {
		out = append(out, "Energy harvesting from mechanical stress")
	}
	if strings.Contains(effectName, "shape memory") {
		out = append(out, "Temperature-activated shape recovery")
	}

	out = append(out,
		"Systematic approach based on proven TRIZ methodology",
		"Integration of scientific principles with engineering practice",
		"Potential for patentable innovation")

	if len(out) > maxAdvantages {
		out = out[:maxAdvantages]
	}
	return out
}

const maxChallenges = 4

func challenges(p knowledge.Principle, e knowledge.Effect) []string {
	var out []string

	switch {
	case p.ID == 15:
		out = append(out, "Complexity of dynamic control systems")
	case p.ID == 36 || p.ID == 35:
		out = append(out, "Precise control of transition conditions")
	case p.ID == 1:
		out = append(out, "Integration complexity of multiple segments")
	}

	effectName := strings.ToLower(e.Name)
	if strings.Contains(effectName, "thermal") {
		out = append(out, "Temperature sensitivity and thermal management")
	}
	if strings.Contains(effectName, "quantum") {
		out = append(out, "Scale-up challenges from quantum effects")
	}
	if strings.Contains(effectName, "nano") {
		out = append(out, "Manufacturing and stability of nanostructures")
	}

	out = append(out,
		"Development time and testing requirements",
		"Cost of implementing new technology",
		"Integration with existing systems")

	if len(out) > maxChallenges {
		out = out[:maxChallenges]
	}
	return out
}

func assessComplexity(p knowledge.Principle, e knowledge.Effect) string {
	score := 2
	switch p.ID {
	case 1, 8, 13:
		score = 1
	case 15, 35, 36:
		score = 3
	}

	effectName := strings.ToLower(e.Name)
	if strings.Contains(effectName, "quantum") || strings.Contains(effectName, "nano") {
		score += 2
	} else if strings.Contains(effectName, "thermal") || strings.Contains(effectName, "shape memory") {
		score++
	}

	switch {
	case score <= 2:
		return ComplexityLow
	case score <= 4:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

type pairing struct {
	principleID int
	effectID    string
}

// rareCombinations are principle/effect pairs observed to produce unusually
// inventive concepts.
var rareCombinations = map[pairing]bool{
	{15, "quantum_tunneling"}: true,
	{35, "shape_memory"}:      true,
	{18, "sonoluminescence"}:  true,
	{36, "superconductivity"}: true,
}

func assessInnovationLevel(p knowledge.Principle, e knowledge.Effect) string {
	if rareCombinations[pairing{p.ID, e.ID}] {
		return InnovationBreakthrough
	}
	if p.ID == 15 || p.ID == 35 || p.ID == 36 || e.ID == "quantum_tunneling" || e.ID == "shape_memory" {
		return InnovationRadical
	}
	return InnovationIncremental
}

const maxDomains = 4

func applicableDomains(p knowledge.Principle, e knowledge.Effect, ctx ProblemContext) []string {
	seen := map[string]bool{}
	var out []string
	add := func(domains ...string) {
		for _, d := range domains {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}

	add(e.TechnicalDomains...)

	system := strings.ToLower(ctx.TechnicalSystem)
	if strings.Contains(system, "automotive") || strings.Contains(system, "car") || strings.Contains(system, "vehicle") {
		add("Automotive", "Transportation")
	}
	if strings.Contains(system, "aerospace") || strings.Contains(system, "aircraft") || strings.Contains(system, "plane") {
		add("Aerospace", "Aviation")
	}
	if strings.Contains(system, "medical") || strings.Contains(system, "health") {
		add("Medical", "Healthcare")
	}

	if p.ID == 15 || p.ID == 35 {
		add("Robotics", "Automation")
	}

	if len(out) > maxDomains {
		out = out[:maxDomains]
	}
	return out
}

var (
	innovationWeights = map[string]float64{
		InnovationIncremental:  1.0,
		InnovationRadical:      2.0,
		InnovationBreakthrough: 3.0,
	}
	complexityWeights = map[string]float64{
		ComplexityLow:    0.5,
		ComplexityMedium: 1.0,
		ComplexityHigh:   0.8,
	}
)

func innovationPotential(c Concept) float64 {
	score, ok := innovationWeights[c.InnovationLevel]
	if !ok {
		score = 1.0
	}
	if w, ok := complexityWeights[c.EstimatedComplexity]; ok {
		score += w
	} else {
		score += 0.5
	}
	score += float64(len(c.Advantages)) * 0.2
	score += float64(len(c.DomainApplications)) * 0.1
	return score
}

// GenerateVariations derives lightweight variants of a base concept by
// reordering implementation steps and extending the domain list with
// related fields.
func (g *Generator) GenerateVariations(base Concept, count int) []Concept {
	variations := make([]Concept, 0, count)
	for i := 0; i < count; i++ {
		v := base
		v.ID = fmt.Sprintf("%s_var_%d", base.ID, i+1)
		v.Title = fmt.Sprintf("%s - Variation %d", base.Title, i+1)
		v.Description = fmt.Sprintf("Variation of: %s", base.Description)
		v.PrinciplesUsed = append([]int(nil), base.PrinciplesUsed...)
		v.EffectsUsed = append([]string(nil), base.EffectsUsed...)
		v.ImplementationSteps = varySteps(base.ImplementationSteps)
		v.Advantages = append([]string(nil), base.Advantages...)
		v.PotentialChallenges = append([]string(nil), base.PotentialChallenges...)
		v.DomainApplications = varyDomains(base.DomainApplications)
		variations = append(variations, v)
	}
	return variations
}

func varySteps(steps []string) []string {
	out := append([]string(nil), steps...)
	if len(out) >= 3 {
		out[1], out[2] = out[2], out[1]
	}
	return out
}

// relatedDomains extends a domain with an adjacent field not already listed.
var relatedDomains = map[string][]string{
	"Automotive":  {"Transportation", "Manufacturing"},
	"Medical":     {"Healthcare", "Biotechnology"},
	"Aerospace":   {"Aviation", "Defense"},
	"Electronics": {"Computing", "Communications"},
}

const maxVariationDomains = 5

func varyDomains(domains []string) []string {
	out := append([]string(nil), domains...)
	for _, domain := range domains {
		for _, related := range relatedDomains[domain] {
			if !contains(out, related) {
				out = append(out, related)
				break
			}
		}
	}
	if len(out) > maxVariationDomains {
		out = out[:maxVariationDomains]
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
