package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestTextBlockKeepsShape(t *testing.T) {
	var report InsightReport
	input := `{"demographic":"one paragraph","psychographic":["a","b"],"challenges":[],"catchphrases":["x"]}`
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Demographic.IsList() || report.Demographic.Paragraph != "one paragraph" {
		t.Fatalf("expected paragraph block, got %+v", report.Demographic)
	}
	if !report.Psychographic.IsList() || len(report.Psychographic.Bullets) != 2 {
		t.Fatalf("expected list block, got %+v", report.Psychographic)
	}
	if !report.Challenges.IsList() || !report.Challenges.IsEmpty() {
		t.Fatalf("expected empty list block, got %+v", report.Challenges)
	}

	out, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(input), &want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTextBlockRejectsOtherShapes(t *testing.T) {
	for _, input := range []string{`42`, `{"a":"b"}`, `[1,2]`, `true`} {
		var block TextBlock
		if err := json.Unmarshal([]byte(input), &block); err == nil {
			t.Fatalf("expected error for %s", input)
		}
	}
}

func TestEnvelope(t *testing.T) {
	report := &InsightReport{Catchphrases: []string{"a"}}
	env := Envelope(report, 2, "id-1")
	if env.Kind != ResultKindReport || env.Report != report || env.Error != nil || env.ReportID != "id-1" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	errReport := &ErrorReport{Kind: ErrorKindParse, Raw: "nope"}
	env = Envelope(errReport, 1, "ignored")
	if env.Kind != ResultKindError || env.Error != errReport || env.Report != nil || env.ReportID != "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestTraitsAreTen(t *testing.T) {
	if len(Traits) != 10 {
		t.Fatalf("expected 10 traits, got %d", len(Traits))
	}
	seen := map[string]bool{}
	for _, trait := range Traits {
		if seen[trait] {
			t.Fatalf("duplicate trait %s", trait)
		}
		seen[trait] = true
	}
}
