package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/trizworks/triz-engine/internal/render"
	"github.com/trizworks/triz-engine/internal/report"
	"github.com/trizworks/triz-engine/internal/reportstore"
)

func main() {
	inputPath := flag.String("input", "", "path to a saved report JSON export")
	dbPath := flag.String("db", "", "SQLite database holding saved reports")
	reportID := flag.String("id", "", "report id to load from the database")
	listReports := flag.Bool("list", false, "list saved reports and exit (requires -db)")
	format := flag.String("format", report.FormatMarkdown, "export format: markdown, json, or html")
	outputPath := flag.String("output", "", "write the export to this path (defaults to stdout)")
	pdfPath := flag.String("pdf", "", "render the report to PDF at this path (requires Chrome)")
	flag.Parse()

	if *listReports {
		if *dbPath == "" {
			log.Fatal("-list requires -db")
		}
		listSaved(*dbPath)
		return
	}

	rep, err := loadReport(*inputPath, *dbPath, *reportID)
	if err != nil {
		log.Fatal(err)
	}

	builder := report.NewBuilder()
	if err := writeOutput(*outputPath, builder.Export(rep, *format)); err != nil {
		log.Fatalf("write export: %v", err)
	}

	if *pdfPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		pdf, err := render.NewPDFRenderer().Render(ctx, rep, builder.Export(rep, report.FormatMarkdown))
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
	}
}

func loadReport(inputPath, dbPath, reportID string) (report.Report, error) {
	switch {
	case inputPath != "":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return report.Report{}, fmt.Errorf("read input: %w", err)
		}
		var rep report.Report
		if err := json.Unmarshal(data, &rep); err != nil {
			return report.Report{}, fmt.Errorf("decode report JSON: %w", err)
		}
		return rep, nil
	case dbPath != "" && reportID != "":
		store, err := reportstore.Open(dbPath)
		if err != nil {
			return report.Report{}, err
		}
		defer store.Close()
		return store.Load(reportID)
	default:
		return report.Report{}, fmt.Errorf("either -input or both -db and -id are required")
	}
}

func listSaved(dbPath string) {
	store, err := reportstore.Open(dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	summaries, err := store.List(0)
	if err != nil {
		log.Fatalf("list reports: %v", err)
	}
	for _, s := range summaries {
		fmt.Printf("%s\t%s\t%s\t%s\n", s.ID, s.CreatedAt, s.Industry, truncate(s.ProblemText, 60))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
