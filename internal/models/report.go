package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Report keys requested from the model.
const (
	KeyDemographic   = "demographic"
	KeyPsychographic = "psychographic"
	KeyChallenges    = "challenges"
	KeyCatchphrases  = "catchphrases"
	KeyPersonaScores = "persona_scores"
)

// MinCatchphrases is the number of catchphrases the prompt asks for.
const MinCatchphrases = 5

// MaxTraitScore bounds every persona trait score and radar axis.
const MaxTraitScore = 10

// Traits are the ten persona traits scored in schema v2, in chart order.
var Traits = []string{
	"openness",
	"conscientiousness",
	"extraversion",
	"agreeableness",
	"emotional_stability",
	"innovativeness",
	"price_sensitivity",
	"brand_loyalty",
	"social_influence",
	"health_consciousness",
}

// Result is either an *InsightReport or an *ErrorReport.
type Result interface {
	isResult()
}

// TextBlock is a report section the model may return as one paragraph or as a list of bullets.
// A non-nil Bullets slice marks the list form; it serializes back to the shape it was decoded from.
type TextBlock struct {
	Paragraph string
	Bullets   []string
}

// Paragraph builds a single-paragraph block.
func Paragraph(text string) TextBlock {
	return TextBlock{Paragraph: text}
}

// Bullets builds a bullet-list block.
func Bullets(items ...string) TextBlock {
	if items == nil {
		items = []string{}
	}
	return TextBlock{Bullets: items}
}

// IsList reports whether the block was given as a list.
func (t TextBlock) IsList() bool {
	return t.Bullets != nil
}

// IsEmpty reports whether the block has no text at all.
func (t TextBlock) IsEmpty() bool {
	return t.Paragraph == "" && len(t.Bullets) == 0
}

func (t TextBlock) MarshalJSON() ([]byte, error) {
	if t.IsList() {
		return json.Marshal(t.Bullets)
	}
	return json.Marshal(t.Paragraph)
}

func (t *TextBlock) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty text block")
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*t = Paragraph(text)
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("text block items must be strings: %w", err)
		}
		*t = Bullets(items...)
		return nil
	default:
		return fmt.Errorf("text block must be a string or an array of strings")
	}
}

// InsightReport is the structured marketing insight parsed from the model reply.
type InsightReport struct {
	Demographic   TextBlock      `json:"demographic"`
	Psychographic TextBlock      `json:"psychographic"`
	Challenges    TextBlock      `json:"challenges"`
	Catchphrases  []string       `json:"catchphrases"`
	PersonaScores map[string]int `json:"persona_scores,omitempty"`
}

func (*InsightReport) isResult() {}

// HasScores reports whether the report carries trait scores to chart.
func (r *InsightReport) HasScores() bool {
	return r != nil && len(r.PersonaScores) > 0
}

// ErrorKind classifies why a reply could not become an InsightReport.
type ErrorKind string

const (
	// ErrorKindParse means the reply was not valid JSON.
	ErrorKindParse ErrorKind = "parse_error"
	// ErrorKindSchema means the reply was JSON but missed required keys or had wrong shapes.
	ErrorKindSchema ErrorKind = "schema_error"
)

// ErrorReport carries the unparsed model reply so the user can see what was returned.
type ErrorReport struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Raw     string    `json:"raw"`
}

func (*ErrorReport) isResult() {}

// Result kinds used in API envelopes.
const (
	ResultKindReport = "report"
	ResultKindError  = "error"
)

// ResultEnvelope is the tagged JSON form of a Result.
type ResultEnvelope struct {
	Kind          string         `json:"kind"`
	SchemaVersion int            `json:"schema_version"`
	ReportID      string         `json:"report_id,omitempty"`
	Report        *InsightReport `json:"report,omitempty"`
	Error         *ErrorReport   `json:"error,omitempty"`
}

// Envelope wraps a Result for transport.
func Envelope(result Result, schemaVersion int, reportID string) ResultEnvelope {
	switch r := result.(type) {
	case *InsightReport:
		return ResultEnvelope{Kind: ResultKindReport, SchemaVersion: schemaVersion, ReportID: reportID, Report: r}
	case *ErrorReport:
		return ResultEnvelope{Kind: ResultKindError, SchemaVersion: schemaVersion, Error: r}
	default:
		return ResultEnvelope{
			Kind:          ResultKindError,
			SchemaVersion: schemaVersion,
			Error:         &ErrorReport{Kind: ErrorKindParse, Message: "empty result"},
		}
	}
}
