package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trizworks/triz-engine/internal/adaptation"
	"github.com/trizworks/triz-engine/internal/engine"
	"github.com/trizworks/triz-engine/internal/knowledge"
	"github.com/trizworks/triz-engine/internal/llm"
	"github.com/trizworks/triz-engine/internal/persona"
	"github.com/trizworks/triz-engine/internal/render"
	"github.com/trizworks/triz-engine/internal/report"
	"github.com/trizworks/triz-engine/internal/reportstore"
	"github.com/trizworks/triz-engine/internal/telemetry"
)

func main() {
	problemText := flag.String("problem", "", "problem statement to analyze")
	problemFile := flag.String("problem-file", "", "read the problem statement from a file instead")
	kbDir := flag.String("kb", "", "knowledge base directory (defaults to the embedded tables)")
	format := flag.String("format", report.FormatMarkdown, "export format: markdown, json, or html")
	outputPath := flag.String("output", "", "write the exported report to this path (defaults to stdout)")
	pdfPath := flag.String("pdf", "", "also render the report to PDF at this path (requires Chrome)")
	dbPath := flag.String("db", "", "save the report into this SQLite database")
	numConcepts := flag.Int("concepts", 0, "number of solution concepts to generate (default 5)")
	numAdaptations := flag.Int("adaptations", 0, "number of concepts to adapt (default 2)")

	industry := flag.String("industry", "", "industry for context adaptation (automotive, medical, ...)")
	companySize := flag.String("company-size", "sme", "company size: startup, sme, enterprise")
	budget := flag.String("budget", "medium", "budget level: low, medium, high")
	timeline := flag.String("timeline", "medium", "timeline: short, medium, long")
	expertise := flag.String("expertise", "medium", "technical expertise: low, medium, high")
	risk := flag.String("risk", "moderate", "risk tolerance: conservative, moderate, aggressive")

	llmProvider := flag.String("llm", "", "optional enrichment provider: anthropic or ollama")
	ollamaURL := flag.String("ollama-url", os.Getenv("OLLAMA_BASE_URL"), "Ollama base URL")
	ollamaModel := flag.String("ollama-model", "", "Ollama model name")
	otlpEndpoint := flag.String("otlp", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"), "OTLP trace endpoint (host:port), empty disables tracing")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	text, err := resolveProblemText(*problemText, *problemFile)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "triz-analyze", *otlpEndpoint)
	if err != nil {
		log.Fatalf("telemetry setup: %v", err)
	}
	defer shutdown(ctx)

	base, err := loadKnowledge(*kbDir)
	if err != nil {
		log.Fatalf("load knowledge base: %v", err)
	}

	opts := []engine.Option{
		engine.WithLogger(logrus.NewEntry(log)),
		engine.WithNumConcepts(*numConcepts),
		engine.WithNumAdaptations(*numAdaptations),
	}
	if adapter, err := buildAdapter(*llmProvider, *ollamaURL, *ollamaModel); err != nil {
		log.Fatalf("llm adapter: %v", err)
	} else if adapter != nil {
		opts = append(opts, engine.WithEnricher(adapter))
	}

	voice := persona.NewManager()
	if *verbose {
		fmt.Fprintln(os.Stderr, voice.Greeting())
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, voice.AnalysisIntro())
	}

	eng := engine.New(base, opts...)
	actx := adaptation.Context{
		Industry:           *industry,
		CompanySize:        *companySize,
		BudgetLevel:        *budget,
		Timeline:           *timeline,
		TechnicalExpertise: *expertise,
		RiskTolerance:      *risk,
	}

	res, err := eng.Analyze(ctx, text, actx, func(stage, message string) {
		log.WithField("stage", stage).Debug(message)
	})
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	builder := report.NewBuilder()
	exported := builder.Export(res.Report, *format)
	if err := writeOutput(*outputPath, exported); err != nil {
		log.Fatalf("write report: %v", err)
	}
	if res.Enrichment != "" && *outputPath == "" {
		fmt.Printf("\n---\n\n## Assistant Commentary\n\n%s\n", res.Enrichment)
	}
	if *verbose {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, voice.UncertaintyStatement())
	}

	if *dbPath != "" {
		if err := persist(res, builder, *dbPath); err != nil {
			log.Fatalf("save report: %v", err)
		}
		log.WithFields(logrus.Fields{"report_id": res.Report.ID, "db": *dbPath}).Info("report saved")
	}

	if *pdfPath != "" {
		markdown := builder.Export(res.Report, report.FormatMarkdown)
		renderCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
		pdf, err := render.NewPDFRenderer().Render(renderCtx, res.Report, markdown)
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
		log.WithField("path", *pdfPath).Info("pdf written")
	}
}

func resolveProblemText(inline, file string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read problem file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("one of -problem or -problem-file is required")
}

func loadKnowledge(dir string) (*knowledge.Base, error) {
	if dir != "" {
		return knowledge.LoadDir(dir)
	}
	return knowledge.Default()
}

func buildAdapter(provider, ollamaURL, ollamaModel string) (llm.Adapter, error) {
	switch provider {
	case "":
		return nil, nil
	case "anthropic":
		return llm.NewAnthropicAdapterFromEnv()
	case "ollama":
		return llm.NewOllamaAdapter(ollamaURL, ollamaModel, 0.7), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func persist(res engine.Analysis, builder *report.Builder, dbPath string) error {
	store, err := reportstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	markdown := builder.Export(res.Report, report.FormatMarkdown)
	return store.Save(res.Report, res.ProblemText, res.Context.Industry, markdown)
}
