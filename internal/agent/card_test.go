package agent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadCard(t *testing.T) {
	card, err := LoadCard("https://insights.example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Name == "" || card.Description == "" || card.Version == "" {
		t.Fatalf("card missing identity fields: %+v", card)
	}
	if len(card.Skills) == 0 {
		t.Fatalf("expected at least one skill")
	}

	want := Endpoints{
		A2A:     "https://insights.example.com/a2a/insights",
		API:     "https://insights.example.com/api/insights",
		Health:  "https://insights.example.com/health",
		WebForm: "https://insights.example.com/",
	}
	if diff := cmp.Diff(want, card.Endpoints); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}
	if card.URL != want.A2A {
		t.Fatalf("unexpected url %q", card.URL)
	}
}
