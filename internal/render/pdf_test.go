package render

import (
	"strings"
	"testing"

	"github.com/trizworks/triz-engine/internal/report"
)

func TestBuildPrintHTML(t *testing.T) {
	rep := report.Report{ID: "TRIZ_20260830_123000_abcd1234", Timestamp: "2026-08-30 12:30:00"}
	md := "# TRIZ Analysis Report\n\n## Recommended Next Steps\n\n1. Review the concept\n"

	out, err := BuildPrintHTML(rep, md)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{
		"<strong>Report:</strong> TRIZ_20260830_123000_abcd1234",
		"<h1>TRIZ Analysis Report</h1>",
		`data-page-break-before="true"`,
		"class='report-html'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestBuildPrintHTMLEscapesMetadata(t *testing.T) {
	rep := report.Report{ID: "<script>alert(1)</script>"}

	out, err := BuildPrintHTML(rep, "body")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("report id should be escaped")
	}
}

func TestPrintLayoutHookOnlyTargetsNextSteps(t *testing.T) {
	in := "<h2>Problem Analysis</h2><h2>Recommended Next Steps</h2>"
	out := applyPrintLayoutHooks(in)

	if !strings.Contains(out, `<h2 data-page-break-before="true">Recommended Next Steps</h2>`) {
		t.Errorf("next-steps heading not tagged: %q", out)
	}
	if !strings.Contains(out, "<h2>Problem Analysis</h2>") {
		t.Errorf("other headings should be untouched: %q", out)
	}
}
