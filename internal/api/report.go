package api

import (
	"fmt"
	"strings"

	"isingmc/domain/run"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RunReportMarkdown describes a recorded run and its magnetization summary
func RunReportMarkdown(rec *run.Record, summary *run.Summary) string {
	m := rec.Manifest
	p := m.Parameters

	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", m.RunID)

	b.WriteString("| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| betaJ | %g |\n", p.BetaJ)
	fmt.Fprintf(&b, "| N | %d |\n", p.Size)
	fmt.Fprintf(&b, "| sweeps | %d |\n", p.Sweeps)
	fmt.Fprintf(&b, "| init | %s |\n", p.Init)
	fmt.Fprintf(&b, "| output | %s |\n", p.Output)
	fmt.Fprintf(&b, "| rng | %s |\n", m.RNGMode)
	if m.Replayable() {
		fmt.Fprintf(&b, "| seed | %d |\n", m.Seed)
	} else {
		b.WriteString("| seed | entropy |\n")
	}
	fmt.Fprintf(&b, "| version | %s |\n", m.CodeVersion)
	fmt.Fprintf(&b, "| fingerprint | `%s` |\n\n", m.Fingerprint.Short())

	b.WriteString("## Updates\n\n")
	fmt.Fprintf(&b, "%d attempted, %d accepted (acceptance rate %.4f). Final magnetization %g.\n\n",
		rec.Steps, rec.Accepted, rec.AcceptanceRate(), rec.FinalMagnetization)

	b.WriteString("## Magnetization\n\n")
	b.WriteString("| Statistic | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| samples | %d |\n", summary.Count)
	fmt.Fprintf(&b, "| mean | %g |\n", summary.Mean)
	fmt.Fprintf(&b, "| std dev | %g |\n", summary.StdDev)
	fmt.Fprintf(&b, "| mean abs | %g |\n", summary.MeanAbs)
	fmt.Fprintf(&b, "| min | %g |\n", summary.Min)
	fmt.Fprintf(&b, "| p25 | %g |\n", summary.P25)
	fmt.Fprintf(&b, "| median | %g |\n", summary.Median)
	fmt.Fprintf(&b, "| p75 | %g |\n", summary.P75)
	fmt.Fprintf(&b, "| max | %g |\n", summary.Max)

	return b.String()
}

// RenderRunReport renders RunReportMarkdown as a complete HTML page
func RenderRunReport(rec *run.Record, summary *run.Summary) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Run " + rec.RunID().String(),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(RunReportMarkdown(rec, summary)), p, renderer)
}
