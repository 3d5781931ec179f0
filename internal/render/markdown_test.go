package render

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

func sampleReport() *models.InsightReport {
	return &models.InsightReport{
		Demographic:   models.Paragraph("Urban professional in their thirties."),
		Psychographic: models.Bullets("Values efficiency", "Follows tech news"),
		Challenges:    models.Bullets("Too little time"),
		Catchphrases:  []string{"Work smarter", "Own your hours", "Less noise", "More life", "Start today"},
	}
}

func TestMarkdownReport(t *testing.T) {
	md := Markdown(sampleReport())
	for _, want := range []string{
		"## Demographic Profile\n\nUrban professional in their thirties.\n",
		"## Psychographic Profile\n\n- Values efficiency\n- Follows tech news\n",
		"## Challenge Analysis\n\n- Too little time\n",
		"- \"Work smarter\"\n",
		"- \"Start today\"\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in markdown:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Persona Scores") {
		t.Fatalf("scores block must be skipped without persona_scores")
	}
}

func TestMarkdownScores(t *testing.T) {
	report := sampleReport()
	report.PersonaScores = map[string]int{"openness": 8}
	md := Markdown(report)
	if !strings.Contains(md, "| Openness | 8/10 |") {
		t.Fatalf("expected openness row:\n%s", md)
	}
	if !strings.Contains(md, "| Brand Loyalty | - |") {
		t.Fatalf("expected unscored row:\n%s", md)
	}
}

func TestMarkdownErrorKeepsRawText(t *testing.T) {
	raw := "Sorry, I cannot help.\n```json\n{broken\n```"
	md := Markdown(&models.ErrorReport{Kind: models.ErrorKindParse, Message: "bad", Raw: raw})
	if !strings.Contains(md, "\n"+raw+"\n") {
		t.Fatalf("raw text must appear verbatim:\n%s", md)
	}
	if !strings.Contains(md, "````\n") {
		t.Fatalf("expected a fence longer than the raw backtick run:\n%s", md)
	}
}

func TestExportJSON(t *testing.T) {
	report := sampleReport()
	report.Catchphrases[0] = "Work <smarter> & faster"
	data, err := ExportJSON(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"demographic\": ") {
		t.Fatalf("expected indented json:\n%s", data)
	}
	if !strings.Contains(string(data), "Work <smarter> & faster") {
		t.Fatalf("expected unescaped html characters:\n%s", data)
	}

	var back models.InsightReport
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(report, &back); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}

	if _, err := ExportJSON(nil); err == nil {
		t.Fatalf("expected error for nil report")
	}
}

func TestNewView(t *testing.T) {
	view := NewView(sampleReport(), "/reports/1/download")
	if view.Report == nil || view.Error != nil || view.Radar != nil || len(view.Sections) != 3 {
		t.Fatalf("unexpected report view: %+v", view)
	}
	if view.DownloadName != DownloadFilename {
		t.Fatalf("unexpected download name: %s", view.DownloadName)
	}

	scored := sampleReport()
	scored.PersonaScores = fullScores()
	if view := NewView(scored, ""); view.Radar == nil || len(view.Radar.Axes) != 10 {
		t.Fatalf("expected radar in view")
	}

	errView := NewView(&models.ErrorReport{Raw: "x"}, "/ignored")
	if errView.Error == nil || errView.Report != nil || errView.DownloadURL != "" {
		t.Fatalf("unexpected error view: %+v", errView)
	}
}
