// Package effects recommends scientific effects that can make a principle
// concrete. Relevance comes from principle-id overlap against the fixed
// catalog, optionally blended with domain-keyword hits over each effect's
// application list and domain tags.
package effects

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trizworks/triz-engine/internal/knowledge"
)

type Recommendation struct {
	Effect                knowledge.Effect `json:"effect"`
	RelevanceScore        float64          `json:"relevance_score"`
	Reasoning             string           `json:"reasoning"`
	CombinationPrinciples []int            `json:"combination_principles"`
}

const (
	principleRelevanceFloor     = 0.2
	contradictionRelevanceFloor = 0.1
	tableCandidateBaseline      = 0.15
	applicationHitScore         = 0.3
	domainHitScore              = 0.2
	parameterSideBonus          = 0.3
)

// coreResolutionPrinciples are the principles whose presence in an effect's
// related set signals general contradiction-resolving capability.
var coreResolutionPrinciples = []int{15, 35, 2, 1}

// parameterEffects maps selected parameters to the catalog effects that
// historically help with them.
var parameterEffects = map[int][]string{
	9:  {"thermal_expansion", "shape_memory", "piezoelectric"},
	14: {"shape_memory", "magnetorheological", "thermal_expansion"},
	17: {"thermal_expansion", "shape_memory", "superconductivity"},
	19: {"thermoelectric", "capillary_action", "aerogel"},
	21: {"piezoelectric", "thermoelectric", "magnetorheological"},
}

// energySideParameters and materialSideParameters gate the per-side bonus in
// contradiction lookups, together with the domain tags that must intersect.
var (
	energySideParameters   = map[int]bool{9: true, 19: true, 21: true}
	energySideDomains      = []string{"Energy", "Electronics"}
	materialSideParameters = map[int]bool{1: true, 14: true}
	materialSideDomains    = []string{"Materials", "Mechanical"}
)

type Lookup struct {
	base *knowledge.Base
}

func NewLookup(base *knowledge.Base) *Lookup {
	return &Lookup{base: base}
}

// ForPrinciples scores every catalog effect by the fraction of the given
// principles it relates to, optionally averaged with a domain-keyword match.
func (l *Lookup) ForPrinciples(principleIDs []int, domainKeywords []string) []Recommendation {
	var recommendations []Recommendation
	if len(principleIDs) == 0 {
		return recommendations
	}

	for _, effect := range l.base.Effects() {
		common := intersect(principleIDs, effect.RelatedPrinciples)
		if len(common) == 0 {
			continue
		}
		relevance := float64(len(common)) / float64(len(principleIDs))
		if len(domainKeywords) > 0 {
			relevance = (relevance + domainMatch(effect, domainKeywords)) / 2
		}
		if relevance <= principleRelevanceFloor {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			Effect:                effect,
			RelevanceScore:        clamp01(relevance),
			Reasoning:             principleReasoning(effect, common),
			CombinationPrinciples: common,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].RelevanceScore > recommendations[j].RelevanceScore
	})
	return recommendations
}

// ForContradiction gathers candidate effects from the fixed parameter table
// for both sides of the pair, plus any catalog effect matching the domain
// keywords, and scores each for this specific contradiction.
func (l *Lookup) ForContradiction(improving, worsening int, domainKeywords []string) []Recommendation {
	fromTable := map[string]bool{}
	for _, param := range []int{improving, worsening} {
		for _, effectID := range parameterEffects[param] {
			fromTable[effectID] = true
		}
	}
	candidateIDs := map[string]bool{}
	for id := range fromTable {
		candidateIDs[id] = true
	}
	if len(domainKeywords) > 0 {
		for _, effect := range l.base.Effects() {
			if matchesDomainKeywords(effect, domainKeywords) {
				candidateIDs[effect.ID] = true
			}
		}
	}

	var recommendations []Recommendation
	// Catalog order keeps the pre-sort ordering deterministic.
	for _, effect := range l.base.Effects() {
		if !candidateIDs[effect.ID] {
			continue
		}
		relevance := contradictionRelevance(effect, improving, worsening)
		// Table candidates are curated for the parameter and always
		// stay in the result, with at least a baseline relevance.
		if fromTable[effect.ID] {
			if relevance < tableCandidateBaseline {
				relevance = tableCandidateBaseline
			}
		} else if relevance <= contradictionRelevanceFloor {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			Effect:                effect,
			RelevanceScore:        clamp01(relevance),
			Reasoning:             contradictionReasoning(effect, improving, worsening),
			CombinationPrinciples: append([]int(nil), effect.RelatedPrinciples...),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].RelevanceScore > recommendations[j].RelevanceScore
	})
	return recommendations
}

func contradictionRelevance(effect knowledge.Effect, improving, worsening int) float64 {
	overlap := len(intersect(coreResolutionPrinciples, effect.RelatedPrinciples))
	relevance := float64(overlap) / float64(len(coreResolutionPrinciples))

	if energySideParameters[improving] && containsAnyDomain(effect, energySideDomains) {
		relevance += parameterSideBonus
	}
	if materialSideParameters[worsening] && containsAnyDomain(effect, materialSideDomains) {
		relevance += parameterSideBonus
	}
	if relevance > 1.0 {
		relevance = 1.0
	}
	return relevance
}

func domainMatch(effect knowledge.Effect, keywords []string) float64 {
	score := 0.0
	for _, app := range effect.Applications {
		appLower := strings.ToLower(app)
		for _, kw := range keywords {
			if strings.Contains(appLower, strings.ToLower(kw)) {
				score += applicationHitScore
			}
		}
	}
	for _, domain := range effect.TechnicalDomains {
		domainLower := strings.ToLower(domain)
		for _, kw := range keywords {
			if strings.Contains(domainLower, strings.ToLower(kw)) {
				score += domainHitScore
			}
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func matchesDomainKeywords(effect knowledge.Effect, keywords []string) bool {
	for _, app := range effect.Applications {
		appLower := strings.ToLower(app)
		for _, kw := range keywords {
			if strings.Contains(appLower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	for _, domain := range effect.TechnicalDomains {
		domainLower := strings.ToLower(domain)
		for _, kw := range keywords {
			if strings.Contains(domainLower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

func containsAnyDomain(effect knowledge.Effect, domains []string) bool {
	for _, tag := range effect.TechnicalDomains {
		for _, d := range domains {
			if tag == d {
				return true
			}
		}
	}
	return false
}

func principleReasoning(effect knowledge.Effect, common []int) string {
	var groups []string
	for _, pid := range common {
		switch {
		case pid >= 1 && pid <= 5:
			groups = append(groups, "separation principles")
		case pid == 15 || pid == 35:
			groups = append(groups, "dynamics and adaptation")
		default:
			groups = append(groups, fmt.Sprintf("principle %d", pid))
		}
	}
	text := fmt.Sprintf("The '%s' effect can enhance solutions based on %s. ", effect.Name, strings.Join(groups, " and "))
	if len(effect.Applications) > 0 {
		text += fmt.Sprintf("For example, it has been used in %s.", strings.ToLower(effect.Applications[0]))
	}
	return text
}

func contradictionReasoning(effect knowledge.Effect, improving, worsening int) string {
	return fmt.Sprintf("The '%s' effect can help resolve the contradiction between improving %s while avoiding degradation of %s. This effect is particularly relevant for %s applications.",
		effect.Name, parameterLabel(improving), parameterLabel(worsening), strings.Join(effect.TechnicalDomains, ", "))
}

var parameterShortNames = map[int]string{
	1: "weight", 9: "speed", 14: "strength", 19: "energy consumption",
	21: "power", 27: "reliability",
}

func parameterLabel(id int) string {
	if name, ok := parameterShortNames[id]; ok {
		return name
	}
	return fmt.Sprintf("parameter %d", id)
}

func intersect(a, b []int) []int {
	inB := map[int]bool{}
	for _, id := range b {
		inB[id] = true
	}
	var out []int
	for _, id := range a {
		if inB[id] {
			out = append(out, id)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
