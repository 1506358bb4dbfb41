// Package principle selects inventive principles for an identified
// contradiction. The contradiction matrix is authoritative when it has an
// entry for the pair; otherwise a coarse heuristic keyed on parameter class
// takes over so the caller always gets recommendations.
package principle

import (
	"fmt"
	"sort"

	"github.com/trizworks/triz-engine/internal/knowledge"
)

const (
	SourceMatrix    = "contradiction_matrix"
	SourceHeuristic = "heuristic"

	primaryThreshold = 0.7
	baseMatrixScore  = 0.8
	baseHeuristic    = 0.4
	universalBonus   = 0.1
	speedBonus       = 0.15

	speedParameter = 9
	maxExamples    = 3
)

// Parameters 1-9 and 17 describe directly measurable physical magnitudes;
// a contradiction inside this set responds to separation principles, every
// other pairing to dynamics and adaptation.
var physicalParameters = map[int]bool{
	1: true, 2: true, 3: true, 4: true, 5: true,
	6: true, 7: true, 8: true, 9: true, 17: true,
}

var universalPrinciples = map[int]bool{1: true, 8: true, 13: true, 15: true, 35: true}

var speedPrinciples = map[int]bool{15: true, 18: true, 28: true}

var separationPrinciples = []int{1, 2, 3, 7}

var dynamicsPrinciples = []int{15, 35, 36, 16}

type Recommendation struct {
	PrincipleID          int      `json:"principle_id"`
	PrincipleName        string   `json:"principle_name"`
	PrincipleDescription string   `json:"principle_description"`
	RelevanceScore       float64  `json:"relevance_score"`
	Reasoning            string   `json:"reasoning"`
	Examples             []string `json:"examples"`
}

type SelectionResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Primary         []Recommendation `json:"primary_principles"`
	Supporting      []Recommendation `json:"supporting_principles"`
	MatrixSource    string           `json:"matrix_source"`
}

type Selector struct {
	base *knowledge.Base
}

func NewSelector(base *knowledge.Base) *Selector {
	return &Selector{base: base}
}

// Select recommends principles for the (improving, worsening) pair.
func (s *Selector) Select(improving, worsening int) SelectionResult {
	principleIDs := s.base.PrinciplesFor(improving, worsening)
	source := SourceMatrix
	if principleIDs == nil {
		principleIDs = heuristicPrinciples(improving, worsening)
		source = SourceHeuristic
	}

	recommendations := make([]Recommendation, 0, len(principleIDs))
	for _, pid := range principleIDs {
		p, ok := s.base.Principle(pid)
		if !ok {
			continue
		}
		examples := p.Examples
		if len(examples) > maxExamples {
			examples = examples[:maxExamples]
		}
		recommendations = append(recommendations, Recommendation{
			PrincipleID:          pid,
			PrincipleName:        p.Name,
			PrincipleDescription: p.Description,
			RelevanceScore:       relevanceScore(pid, improving, source),
			Reasoning:            s.reasoning(p, improving, worsening),
			Examples:             examples,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].RelevanceScore > recommendations[j].RelevanceScore
	})

	result := SelectionResult{
		Recommendations: recommendations,
		Primary:         []Recommendation{},
		Supporting:      []Recommendation{},
		MatrixSource:    source,
	}
	for _, r := range recommendations {
		if r.RelevanceScore >= primaryThreshold {
			result.Primary = append(result.Primary, r)
		} else {
			result.Supporting = append(result.Supporting, r)
		}
	}
	return result
}

func heuristicPrinciples(improving, worsening int) []int {
	if physicalParameters[improving] && physicalParameters[worsening] {
		return separationPrinciples
	}
	return dynamicsPrinciples
}

func relevanceScore(principleID, improving int, source string) float64 {
	score := baseHeuristic
	if source == SourceMatrix {
		score = baseMatrixScore
	}
	if universalPrinciples[principleID] {
		score += universalBonus
	}
	if improving == speedParameter && speedPrinciples[principleID] {
		score += speedBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (s *Selector) reasoning(p knowledge.Principle, improving, worsening int) string {
	improvingName := fmt.Sprintf("parameter %d", improving)
	if param, ok := s.base.Parameter(improving); ok {
		improvingName = param.Name
	}
	worseningName := fmt.Sprintf("parameter %d", worsening)
	if param, ok := s.base.Parameter(worsening); ok {
		worseningName = param.Name
	}

	text := fmt.Sprintf("Principle %d '%s' is recommended to resolve the contradiction between improving '%s' and avoiding degradation of '%s'. ",
		p.ID, p.Name, improvingName, worseningName)

	switch p.ID {
	case 15:
		text += "This principle suggests making the system or its parameters dynamic to achieve the desired improvement without compromising other aspects."
	case 1:
		text += "This principle suggests dividing the system into independent parts that can be optimized separately."
	case 2:
		text += "This principle suggests separating the conflicting properties in space, time, or condition."
	}
	return text
}
