// Package contradiction maps problem text onto pairs of engineering
// parameters: one the statement wants to improve, one that worsens as a
// consequence. Matching is deliberately simple — regex candidate extraction
// followed by keyword scoring against the parameter table — and never fails;
// text with no recognizable pair yields an empty result.
package contradiction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/trizworks/triz-engine/internal/knowledge"
)

type Contradiction struct {
	ImprovingParameter     int     `json:"improving_parameter"`
	ImprovingParameterName string  `json:"improving_parameter_name"`
	WorseningParameter     int     `json:"worsening_parameter"`
	WorseningParameterName string  `json:"worsening_parameter_name"`
	ConfidenceScore        float64 `json:"confidence_score"`
	Reasoning              string  `json:"reasoning"`
}

type Result struct {
	Contradictions []Contradiction `json:"contradictions"`
	Primary        *Contradiction  `json:"primary_contradiction,omitempty"`
	Alternatives   []Contradiction `json:"alternative_contradictions"`
}

const (
	scoreExact       = 1.0
	scoreSubstring   = 0.7
	scoreEditDist    = 0.5
	matchKeepAbove   = 0.3
	alternativeAbove = 0.3
	maxEditDistance  = 2
)

var improvementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:make|want|need|desire|improve|increase|enhance|optimize|better)\s+(?:more|less|better|faster|stronger|slower|weaker|cheaper|expensive)?\s*(\w+)`),
	regexp.MustCompile(`(?i)(?:increase|improve|enhance)\s+(?:the\s+)?(\w+)`),
	regexp.MustCompile(`(?i)(?:better|faster|stronger|lighter|cheaper)\s+(\w+)`),
	regexp.MustCompile(`(?i)(?:reduce|decrease|minimize)\s+(?:the\s+)?(\w+)`),
}

var worseningPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:but|however|unfortunately|causes|results?\s+in|leads?\s+to)\s+(?:more|increased|higher|worse|expensive|heavier|slower)\s*(\w+)`),
	regexp.MustCompile(`(?i)(?:at\s+the\s+cost\s+of|at\s+the\s+expense\s+of)\s+(?:more|increased|higher|worse)\s*(\w+)`),
	regexp.MustCompile(`(?i)(?:increases?|worsens?|degrades?)\s+(?:the\s+)?(\w+)`),
	regexp.MustCompile(`(?i)(?:problem|issue|difficulty|drawback)\s+(?:with|of|in)\s+(\w+)`),
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

var stopWords = map[string]bool{
	"of": true, "the": true, "and": true, "or": true, "to": true, "in": true,
	"on": true, "at": true, "by": true, "for": true, "with": true,
}

// Identifier holds the per-parameter keyword sets. They are derived once at
// construction from the parameter table, not per call.
type Identifier struct {
	base     *knowledge.Base
	keywords map[int]map[string]bool
}

func NewIdentifier(base *knowledge.Base) *Identifier {
	id := &Identifier{base: base, keywords: map[int]map[string]bool{}}
	for _, param := range base.Parameters() {
		id.keywords[param.ID] = buildKeywords(param)
	}
	return id
}

func buildKeywords(param knowledge.Parameter) map[string]bool {
	set := map[string]bool{}
	source := strings.ToLower(param.Name) + " " + strings.ToLower(param.Description)
	for _, word := range wordPattern.FindAllString(source, -1) {
		if stopWords[word] || len(word) <= 2 {
			continue
		}
		set[word] = true
	}
	return set
}

// Identify extracts improvement and worsening parameter candidates from the
// text, pairs them, and ranks the pairs by confidence.
func (id *Identifier) Identify(text string) Result {
	lowered := strings.ToLower(text)

	improving := id.findCandidates(lowered, improvementPatterns)
	worsening := id.findCandidates(lowered, worseningPatterns)

	var contradictions []Contradiction
	for _, imp := range improving {
		for _, wors := range worsening {
			if imp.parameterID == wors.parameterID {
				continue
			}
			impParam, _ := id.base.Parameter(imp.parameterID)
			worsParam, _ := id.base.Parameter(wors.parameterID)
			contradictions = append(contradictions, Contradiction{
				ImprovingParameter:     imp.parameterID,
				ImprovingParameterName: impParam.Name,
				WorseningParameter:     wors.parameterID,
				WorseningParameterName: worsParam.Name,
				ConfidenceScore:        (imp.score + wors.score) / 2,
				Reasoning: "Identified contradiction between improving " + impParam.Name +
					" and worsening " + worsParam.Name,
			})
		}
	}

	sort.SliceStable(contradictions, func(i, j int) bool {
		return contradictions[i].ConfidenceScore > contradictions[j].ConfidenceScore
	})

	result := Result{Contradictions: contradictions, Alternatives: []Contradiction{}}
	if len(contradictions) > 0 {
		primary := contradictions[0]
		result.Primary = &primary
		for _, c := range contradictions[1:] {
			if c.ConfidenceScore > alternativeAbove {
				result.Alternatives = append(result.Alternatives, c)
			}
		}
	}
	return result
}

type candidate struct {
	parameterID int
	score       float64
}

func (id *Identifier) findCandidates(text string, patterns []*regexp.Regexp) []candidate {
	best := map[int]float64{}
	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			keyword := m[0]
			if len(m) > 1 {
				keyword = m[1]
			}
			for _, match := range id.matchKeyword(keyword) {
				if match.score > best[match.parameterID] {
					best[match.parameterID] = match.score
				}
			}
		}
	}

	ids := make([]int, 0, len(best))
	for pid := range best {
		ids = append(ids, pid)
	}
	sort.Ints(ids)

	out := make([]candidate, 0, len(ids))
	for _, pid := range ids {
		out = append(out, candidate{parameterID: pid, score: best[pid]})
	}
	return out
}

// matchKeyword scores a candidate keyword against every parameter's keyword
// set. Tiers are strictly ordered: exact membership beats substring beats
// edit distance, and only the best tier per parameter counts.
func (id *Identifier) matchKeyword(keyword string) []candidate {
	keyword = strings.ToLower(keyword)
	var matches []candidate

	for pid, words := range id.keywords {
		score := 0.0
		if words[keyword] {
			score = scoreExact
		} else {
			for word := range words {
				if strings.Contains(word, keyword) || strings.Contains(keyword, word) {
					if scoreSubstring > score {
						score = scoreSubstring
					}
				} else if Levenshtein(keyword, word) <= maxEditDistance {
					if scoreEditDist > score {
						score = scoreEditDist
					}
				}
			}
		}
		if score > matchKeepAbove {
			matches = append(matches, candidate{parameterID: pid, score: score})
		}
	}
	return matches
}

// Levenshtein computes the standard edit distance between two strings,
// case-insensitively.
func Levenshtein(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 0
			if ca != cb {
				cost = 1
			}
			curr[j+1] = min3(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
