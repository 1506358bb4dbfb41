// Package render turns a report's Markdown into print-styled HTML and, via
// headless Chromium, into PDF.
package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/trizworks/triz-engine/internal/report"
)

const renderTimeout = 30 * time.Second

type PDFRenderer struct {
	chromePath string
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{chromePath: detectChromePath()}
}

// Render converts the report's Markdown export to PDF bytes.
func (r *PDFRenderer) Render(ctx context.Context, rep report.Report, markdown string) ([]byte, error) {
	htmlDoc, err := BuildPrintHTML(rep, markdown)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

const printCSS = `body{font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;color:#1c1917;background:#fff;padding:0.6rem;}
.pdf-wrap{max-width:1000px;margin:0 auto;}
.pdf-gutter{border-left:3px solid #1e3a8a;border-right:3px solid #1e3a8a;padding:0 0.65rem;}
.report-meta{color:#44403c;font-size:0.85rem;margin-bottom:0.75rem;}
.report-meta strong{color:#1c1917;}
.report-html h1{font-size:1.8em;border-bottom:3px solid #1e3a8a;padding-bottom:0.3em;}
.report-html h2{color:#333;border-bottom:2px solid #667eea;padding-bottom:10px;}
.report-html h3{color:#1e3a8a;}
.report-html table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.8rem;}
.report-html th,.report-html td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
h2[data-page-break-before="true"]{break-before:page;page-break-before:always;}
@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .pdf-wrap{max-width:none;} }`

// BuildPrintHTML converts Markdown to a standalone HTML document with the
// print stylesheet and report metadata header.
func BuildPrintHTML(rep report.Report, markdown string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	contentHTML := applyPrintLayoutHooks(content.String())

	var meta strings.Builder
	if rep.ID != "" {
		meta.WriteString("<div><strong>Report:</strong> " + html.EscapeString(rep.ID) + "</div>")
	}
	if rep.Timestamp != "" {
		meta.WriteString("<div><strong>Generated:</strong> " + html.EscapeString(rep.Timestamp) + "</div>")
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>TRIZ Analysis Report</title>" +
		"<style>" + printCSS + "</style></head><body>" +
		"<div class='pdf-wrap'><div class='pdf-gutter'>" +
		"<div class='report-meta'>" + meta.String() + "</div>" +
		"<div class='report-html'>" + contentHTML + "</div>" +
		"</div></div></body></html>", nil
}

// reNextSteps forces the closing section onto its own page so the action
// list prints as a unit.
var reNextSteps = regexp.MustCompile(`(?i)<h2([^>]*)>\s*Recommended Next Steps\s*</h2>`)

func applyPrintLayoutHooks(contentHTML string) string {
	return reNextSteps.ReplaceAllString(contentHTML, `<h2$1 data-page-break-before="true">Recommended Next Steps</h2>`)
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
