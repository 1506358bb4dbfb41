// Package engine runs the full analysis pipeline: parse the problem text,
// identify the technical contradiction, select principles, look up
// scientific effects, generate and adapt solution concepts, and assemble
// the report. Every stage is a pure function over its inputs; the engine
// only sequences them and adds logging, tracing, and optional language
// model enrichment.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trizworks/triz-engine/internal/adaptation"
	"github.com/trizworks/triz-engine/internal/concept"
	"github.com/trizworks/triz-engine/internal/contradiction"
	"github.com/trizworks/triz-engine/internal/effects"
	"github.com/trizworks/triz-engine/internal/knowledge"
	"github.com/trizworks/triz-engine/internal/llm"
	"github.com/trizworks/triz-engine/internal/persona"
	"github.com/trizworks/triz-engine/internal/principle"
	"github.com/trizworks/triz-engine/internal/problem"
	"github.com/trizworks/triz-engine/internal/report"
	"github.com/trizworks/triz-engine/internal/telemetry"
)

const (
	MinProblemChars = 10

	defaultNumConcepts    = 5
	defaultNumAdaptations = 2
	maxConceptEffects     = 5
	maxAdaptedConcepts    = 3
	maxDomainKeywords     = 5

	enrichmentMaxTokens = 512
)

type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

type StageProgressFn func(stage, message string)

// Analysis is the complete output of one pipeline run.
type Analysis struct {
	ProblemText    string                      `json:"problem_text"`
	Problem        problem.Parsed              `json:"parsed_problem"`
	Contradictions contradiction.Result        `json:"contradictions"`
	Principles     []principle.SelectionResult `json:"principle_selections"`
	Effects        []effects.Recommendation    `json:"effects"`
	Concepts       concept.Result              `json:"concepts"`
	Adaptation     adaptation.Result           `json:"adaptation"`
	Context        adaptation.Context          `json:"adaptation_context"`
	Report         report.Report               `json:"report"`
	Enrichment     string                      `json:"enrichment,omitempty"`
	StagesExecuted []string                    `json:"stages_executed"`
	Duration       time.Duration               `json:"-"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithEnricher attaches an optional language-model adapter. A nil adapter
// leaves enrichment off.
func WithEnricher(adapter llm.Adapter) Option {
	return func(e *Engine) { e.enricher = adapter }
}

func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) { e.log = log }
}

func WithNumConcepts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.numConcepts = n
		}
	}
}

func WithNumAdaptations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.numAdaptations = n
		}
	}
}

// WithTitleSelector overrides concept title selection, mainly for seeded
// variation in the CLI.
func WithTitleSelector(titles concept.TitleSelector) Option {
	return func(e *Engine) { e.titles = titles }
}

type Engine struct {
	base       *knowledge.Base
	parser     *problem.Parser
	identifier *contradiction.Identifier
	selector   *principle.Selector
	lookup     *effects.Lookup
	planner    *adaptation.Planner
	builder    *report.Builder
	persona    *persona.Manager
	titles     concept.TitleSelector
	enricher   llm.Adapter
	log        *logrus.Entry

	numConcepts    int
	numAdaptations int
}

func New(base *knowledge.Base, opts ...Option) *Engine {
	e := &Engine{
		base:           base,
		parser:         problem.NewParser(),
		identifier:     contradiction.NewIdentifier(base),
		selector:       principle.NewSelector(base),
		lookup:         effects.NewLookup(base),
		planner:        adaptation.NewPlanner(),
		builder:        report.NewBuilder(),
		persona:        persona.NewManager(),
		log:            logrus.NewEntry(logrus.StandardLogger()),
		numConcepts:    defaultNumConcepts,
		numAdaptations: defaultNumAdaptations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs the pipeline over one problem statement. Stages that find
// nothing produce empty results and the run continues; only unusable input
// is an error.
func (e *Engine) Analyze(ctx context.Context, problemText string, actx adaptation.Context, progress StageProgressFn) (Analysis, error) {
	started := time.Now()
	res := Analysis{ProblemText: problemText, Context: actx}

	if len(strings.TrimSpace(problemText)) < MinProblemChars {
		return res, &StageError{Stage: "parse", Err: fmt.Errorf("problem text is too short for analysis")}
	}

	ctx, span := telemetry.Tracer().Start(ctx, "engine.Analyze",
		trace.WithAttributes(attribute.Int("problem.chars", len(problemText))))
	defer span.End()

	log := e.log.WithField("problem_chars", len(problemText))

	// Stage 1+2: normalization and structured parsing.
	emit(progress, "parse", "Parsing problem statement...")
	res.Problem = runStage(ctx, &res, "parse", func() problem.Parsed {
		return e.parser.Parse(problemText)
	})
	log.WithFields(logrus.Fields{
		"technical_system": res.Problem.TechnicalSystem,
		"constraints":      len(res.Problem.Constraints),
	}).Info("problem parsed")

	// Stage 3: contradiction identification.
	emit(progress, "contradiction", "Identifying technical contradiction...")
	res.Contradictions = runStage(ctx, &res, "contradiction", func() contradiction.Result {
		return e.identifier.Identify(problemText)
	})
	if primary := res.Contradictions.Primary; primary != nil {
		log.WithFields(logrus.Fields{
			"improving":  primary.ImprovingParameter,
			"worsening":  primary.WorseningParameter,
			"confidence": primary.ConfidenceScore,
		}).Info("primary contradiction identified")
	} else {
		log.Info("no clear contradiction, continuing with general analysis")
	}

	// Stage 4: principle selection requires a primary contradiction.
	emit(progress, "principles", "Selecting inventive principles...")
	if primary := res.Contradictions.Primary; primary != nil {
		sel := runStage(ctx, &res, "principles", func() principle.SelectionResult {
			return e.selector.Select(primary.ImprovingParameter, primary.WorseningParameter)
		})
		res.Principles = []principle.SelectionResult{sel}
	}

	// Stage 5: effects lookup on the primary contradiction.
	emit(progress, "effects", "Looking up scientific effects...")
	domainKeywords := ExtractDomainKeywords(problemText)
	if primary := res.Contradictions.Primary; primary != nil {
		res.Effects = runStage(ctx, &res, "effects", func() []effects.Recommendation {
			return e.lookup.ForContradiction(primary.ImprovingParameter, primary.WorseningParameter, domainKeywords)
		})
	}
	log.WithField("effects", len(res.Effects)).Info("effects lookup complete")

	// Stage 6: concept generation needs both principles and effects.
	emit(progress, "concepts", "Generating solution concepts...")
	if len(res.Principles) > 0 && len(res.Effects) > 0 {
		principles := e.selectedPrinciples(res.Principles)
		conceptEffects := e.recommendedEffects(res.Effects, maxConceptEffects)
		res.Concepts = runStage(ctx, &res, "concepts", func() concept.Result {
			gen := concept.NewGenerator(e.titles)
			return gen.Generate(principles, conceptEffects, e.problemContext(res.Problem), e.numConcepts)
		})
	}
	log.WithField("concepts", len(res.Concepts.Concepts)).Info("concept generation complete")

	// Stage 7: context adaptation over the top concepts.
	emit(progress, "adaptation", "Adapting concepts to context...")
	if len(res.Concepts.Concepts) > 0 {
		top := res.Concepts.Concepts
		if len(top) > maxAdaptedConcepts {
			top = top[:maxAdaptedConcepts]
		}
		res.Adaptation = runStage(ctx, &res, "adaptation", func() adaptation.Result {
			return e.planner.Adapt(top, actx, e.numAdaptations)
		})
	}

	// Optional enrichment. Adapter failures are values and simply skip
	// the attachment; they never fail the run.
	if e.enricher != nil && res.Adaptation.Recommended != nil {
		emit(progress, "enrichment", "Requesting language-model enrichment...")
		res.Enrichment = e.enrich(ctx, &res)
	}

	// Stage 8: report assembly.
	emit(progress, "report", "Building analysis report...")
	res.Report = runStage(ctx, &res, "report", func() report.Report {
		return e.builder.Build(report.Input{
			ProblemText:    problemText,
			Problem:        res.Problem,
			Contradictions: res.Contradictions,
			Principles:     res.Principles,
			Effects:        res.Effects,
			Concepts:       res.Concepts.Concepts,
			Adaptation:     res.Adaptation,
			Context:        actx,
		})
	})

	res.Duration = time.Since(started)
	log.WithFields(logrus.Fields{
		"report_id": res.Report.ID,
		"duration":  res.Duration.Round(time.Millisecond),
	}).Info("analysis complete")
	return res, nil
}

// runStage wraps one pipeline step with a span and the executed-stages ledger.
func runStage[T any](ctx context.Context, res *Analysis, name string, fn func() T) T {
	_, span := telemetry.Tracer().Start(ctx, "engine."+name)
	defer span.End()
	res.StagesExecuted = append(res.StagesExecuted, name)
	return fn()
}

// selectedPrinciples resolves recommendation ids back to catalog entries,
// primary principles first.
func (e *Engine) selectedPrinciples(selections []principle.SelectionResult) []knowledge.Principle {
	var out []knowledge.Principle
	seen := map[int]bool{}
	for _, sel := range selections {
		for _, rec := range append(append([]principle.Recommendation{}, sel.Primary...), sel.Supporting...) {
			if seen[rec.PrincipleID] {
				continue
			}
			seen[rec.PrincipleID] = true
			if p, ok := e.base.Principle(rec.PrincipleID); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func (e *Engine) recommendedEffects(recs []effects.Recommendation, limit int) []knowledge.Effect {
	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]knowledge.Effect, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Effect)
	}
	return out
}

func (e *Engine) problemContext(p problem.Parsed) concept.ProblemContext {
	ctx := concept.ProblemContext{
		TechnicalSystem:    p.TechnicalSystem,
		DesiredImprovement: p.DesiredImprovement,
	}
	if ctx.TechnicalSystem == "" {
		ctx.TechnicalSystem = "Unknown"
	}
	if len(p.Constraints) > 0 {
		ctx.Constraint = p.Constraints[0]
	}
	return ctx
}

func (e *Engine) enrich(ctx context.Context, res *Analysis) string {
	rec := res.Adaptation.Recommended
	prompt := fmt.Sprintf(
		"Refine this solution concept for presentation to an engineering team.\n\nTitle: %s\n\nDescription: %s\n\nKeep the TRIZ reasoning visible and stay under 200 words.",
		rec.AdaptedTitle, rec.AdaptedDescription)

	resp := e.enricher.Generate(ctx, prompt, llm.Options{
		SystemPrompt: e.persona.SystemPrompt(),
		MaxTokens:    enrichmentMaxTokens,
	})
	if resp.IsError() {
		e.log.WithField("model", resp.Model).Warn("enrichment unavailable, continuing without it")
		return ""
	}
	return resp.Content
}

func emit(progress StageProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}

var domainPatterns = []struct {
	domain   string
	keywords []string
}{
	{"automotive", []string{"car", "vehicle", "engine", "transmission", "brake", "suspension"}},
	{"aerospace", []string{"aircraft", "plane", "wing", "fuselage", "propulsion", "altitude"}},
	{"medical", []string{"patient", "treatment", "diagnosis", "surgery", "implant", "therapy"}},
	{"manufacturing", []string{"production", "assembly", "quality", "efficiency", "automation"}},
	{"energy", []string{"power", "efficiency", "consumption", "renewable", "battery", "solar"}},
	{"electronics", []string{"circuit", "signal", "processor", "memory", "display", "sensor"}},
}

// ExtractDomainKeywords maps problem text to up to five domain keywords:
// the matched domain name plus the first two entries of its keyword list.
func ExtractDomainKeywords(problemText string) []string {
	lower := strings.ToLower(problemText)
	var keywords []string
	for _, dp := range domainPatterns {
		matched := false
		for _, kw := range dp.keywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if matched {
			keywords = append(keywords, dp.domain)
			keywords = append(keywords, dp.keywords[:2]...)
		}
	}
	if len(keywords) > maxDomainKeywords {
		keywords = keywords[:maxDomainKeywords]
	}
	return keywords
}
