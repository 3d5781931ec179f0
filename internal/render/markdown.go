package render

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

// Markdown renders a result as Markdown text.
func Markdown(result models.Result) string {
	switch r := result.(type) {
	case *models.InsightReport:
		return reportMarkdown(r)
	case *models.ErrorReport:
		return errorMarkdown(r)
	default:
		return "No insights generated."
	}
}

func reportMarkdown(report *models.InsightReport) string {
	var b strings.Builder
	b.WriteString("# Marketing Insights\n")

	for _, section := range Sections(report) {
		fmt.Fprintf(&b, "\n## %s\n\n", section.Title)
		writeBlock(&b, section.Block)
	}

	b.WriteString("\n## Catchphrases\n\n")
	for _, phrase := range report.Catchphrases {
		fmt.Fprintf(&b, "- \"%s\"\n", strings.TrimSpace(phrase))
	}

	if report.HasScores() {
		radar := NewRadar(report.PersonaScores)
		b.WriteString("\n## Persona Scores\n\n| Trait | Score |\n|---|---|\n")
		for _, axis := range radar.Axes {
			score := "-"
			if axis.Scored {
				score = fmt.Sprintf("%d/%d", axis.Value, axis.Max)
			}
			fmt.Fprintf(&b, "| %s | %s |\n", axis.Label, score)
		}
	}
	return b.String()
}

func writeBlock(b *strings.Builder, block models.TextBlock) {
	if !block.IsList() {
		b.WriteString(strings.TrimSpace(block.Paragraph))
		b.WriteString("\n")
		return
	}
	for _, item := range block.Bullets {
		fmt.Fprintf(b, "- %s\n", strings.TrimSpace(item))
	}
}

// errorMarkdown shows the raw reply inside a fence longer than any backtick run it contains,
// so the text comes through unmodified.
func errorMarkdown(report *models.ErrorReport) string {
	longest, run := 0, 0
	for _, r := range report.Raw {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", max(3, longest+1))

	var b strings.Builder
	fmt.Fprintf(&b, "**Error (%s):** %s\n\n", report.Kind, report.Message)
	b.WriteString("Raw model reply:\n\n")
	b.WriteString(fence + "\n")
	b.WriteString(report.Raw)
	b.WriteString("\n" + fence + "\n")
	return b.String()
}
