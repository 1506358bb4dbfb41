// Package problem turns free-text engineering problem statements into a
// structured form the downstream analysis stages can work with. Extraction
// is rule-based: fixed vocabularies and regular expressions, first match
// wins. A statement that matches nothing still parses; absent fields stay
// empty.
package problem

import (
	"regexp"
	"strings"
)

type Parsed struct {
	OriginalText          string            `json:"original_text"`
	NormalizedDescription string            `json:"normalized_description"`
	TechnicalSystem       string            `json:"technical_system,omitempty"`
	DesiredImprovement    string            `json:"desired_improvement,omitempty"`
	UndesiredConsequence  string            `json:"undesired_consequence,omitempty"`
	Constraints           []string          `json:"constraints"`
	Context               map[string]string `json:"context"`
}

const consequenceMaxChars = 50

// Vocabulary order matters: extraction returns the first listed entry found
// in the text, not the first occurrence in the text.
var improvementKeywords = []string{
	"faster", "stronger", "lighter", "cheaper", "more efficient",
	"increase", "improve", "enhance", "optimize", "better",
}

var consequenceKeywords = []string{
	"but", "however", "causes", "results in", "leads to",
	"at the cost of", "unfortunately", "downside",
}

var systemPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(car|vehicle|automobile)`),
	regexp.MustCompile(`(engine|motor)`),
	regexp.MustCompile(`(machine|device|system)`),
}

var constraintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`without (\w+)`),
	regexp.MustCompile(`must not (\w+)`),
	regexp.MustCompile(`cannot (\w+)`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(text string) Parsed {
	normalized := Normalize(text)
	return Parsed{
		OriginalText:          text,
		NormalizedDescription: normalized,
		TechnicalSystem:       extractTechnicalSystem(normalized),
		DesiredImprovement:    extractDesiredImprovement(normalized),
		UndesiredConsequence:  extractUndesiredConsequence(normalized),
		Constraints:           extractConstraints(normalized),
		Context:               extractContext(normalized),
	}
}

// Normalize collapses whitespace runs to single spaces, trims the ends and
// lowercases. The original text is kept verbatim in Parsed.
func Normalize(text string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " "))
}

func extractTechnicalSystem(text string) string {
	for _, pattern := range systemPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func extractDesiredImprovement(text string) string {
	for _, keyword := range improvementKeywords {
		if strings.Contains(text, keyword) {
			return keyword
		}
	}
	return ""
}

func extractUndesiredConsequence(text string) string {
	for _, keyword := range consequenceKeywords {
		if idx := strings.Index(text, keyword); idx >= 0 {
			consequence := strings.TrimSpace(text[idx+len(keyword):])
			// Character limit, not bytes: never cut a multibyte rune.
			if runes := []rune(consequence); len(runes) > consequenceMaxChars {
				consequence = string(runes[:consequenceMaxChars])
			}
			return consequence
		}
	}
	return ""
}

func extractConstraints(text string) []string {
	constraints := []string{}
	for _, pattern := range constraintPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			constraints = append(constraints, m[1])
		}
	}
	return constraints
}

func extractContext(text string) map[string]string {
	domain := "general"
	switch {
	case containsAny(text, "car", "vehicle", "engine"):
		domain = "automotive"
	case containsAny(text, "machine", "manufacturing"):
		domain = "manufacturing"
	}
	return map[string]string{"domain": domain}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
