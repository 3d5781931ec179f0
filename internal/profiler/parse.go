package profiler

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

const fence = "```"

// Messages attached to ErrorReports.
const (
	MessageParseError  = "The model reply could not be parsed as JSON."
	MessageSchemaError = "The model reply does not match the insight report format"
)

var requiredSections = []string{
	models.KeyDemographic,
	models.KeyPsychographic,
	models.KeyChallenges,
}

// Parse turns a model reply into an InsightReport, or an ErrorReport carrying the reply unchanged.
// It never calls the model again.
func Parse(raw string) models.Result {
	payload, err := Decode(raw)
	if err != nil {
		return &models.ErrorReport{
			Kind:    models.ErrorKindParse,
			Message: MessageParseError,
			Raw:     raw,
		}
	}

	report, err := toReport(payload)
	if err != nil {
		return &models.ErrorReport{
			Kind:    models.ErrorKindSchema,
			Message: fmt.Sprintf("%s: %v.", MessageSchemaError, err),
			Raw:     raw,
		}
	}
	return report
}

// Decode strips an optional fenced block and parses the remaining text as a JSON object.
func Decode(raw string) (map[string]any, error) {
	body := StripFence(raw)
	if body == "" {
		return nil, fmt.Errorf("empty reply")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("reply is not a JSON object")
	}
	return payload, nil
}

// StripFence removes one surrounding markdown code fence when it is untagged or tagged as JSON.
// Any other text is returned trimmed but otherwise untouched.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if len(text) < 2*len(fence) || !strings.HasPrefix(text, fence) || !strings.HasSuffix(text, fence) {
		return text
	}

	inner := text[len(fence) : len(text)-len(fence)]
	tag, body, hasNewline := strings.Cut(inner, "\n")
	if !hasNewline {
		tag, body = "", inner
		if len(inner) >= 4 && strings.EqualFold(inner[:4], "json") {
			body = inner[4:]
		}
	}
	if !isDataTag(strings.TrimSpace(tag)) {
		return text
	}
	return strings.TrimSpace(body)
}

func isDataTag(tag string) bool {
	switch strings.ToLower(tag) {
	case "", "json", "jsonc", "json5":
		return true
	default:
		return false
	}
}

func toReport(payload map[string]any) (*models.InsightReport, error) {
	for _, key := range requiredSections {
		if err := checkTextBlock(payload, key); err != nil {
			return nil, err
		}
	}
	catchphrases, err := parseStringSlice(payload, models.KeyCatchphrases)
	if err != nil {
		return nil, err
	}
	if len(catchphrases) == 0 {
		return nil, fmt.Errorf("field %s is empty", models.KeyCatchphrases)
	}

	report := &models.InsightReport{Catchphrases: catchphrases}
	report.Demographic, _ = textBlock(payload[models.KeyDemographic])
	report.Psychographic, _ = textBlock(payload[models.KeyPsychographic])
	report.Challenges, _ = textBlock(payload[models.KeyChallenges])

	if raw, ok := payload[models.KeyPersonaScores]; ok && raw != nil {
		scores, err := parseScores(raw)
		if err != nil {
			return nil, err
		}
		report.PersonaScores = scores
	}
	return report, nil
}

func checkTextBlock(payload map[string]any, field string) error {
	raw, ok := payload[field]
	if !ok {
		return fmt.Errorf("missing field %s", field)
	}
	if _, ok := textBlock(raw); !ok {
		return fmt.Errorf("invalid field type for %s", field)
	}
	return nil
}

func textBlock(raw any) (models.TextBlock, bool) {
	switch value := raw.(type) {
	case string:
		return models.Paragraph(value), true
	case []any:
		items, ok := stringItems(value)
		if !ok {
			return models.TextBlock{}, false
		}
		return models.Bullets(items...), true
	default:
		return models.TextBlock{}, false
	}
}

func parseStringSlice(payload map[string]any, field string) ([]string, error) {
	raw, ok := payload[field]
	if !ok {
		return nil, fmt.Errorf("missing field %s", field)
	}
	value, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid field type for %s", field)
	}
	items, ok := stringItems(value)
	if !ok {
		return nil, fmt.Errorf("invalid element in %s", field)
	}
	return items, nil
}

func stringItems(values []any) ([]string, bool) {
	items := make([]string, 0, len(values))
	for _, item := range values {
		text, ok := item.(string)
		if !ok {
			return nil, false
		}
		items = append(items, text)
	}
	return items, true
}

func parseScores(raw any) (map[string]int, error) {
	object, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid field type for %s", models.KeyPersonaScores)
	}
	scores := make(map[string]int, len(object))
	for trait, value := range object {
		number, ok := value.(float64)
		if !ok || number != float64(int(number)) {
			return nil, fmt.Errorf("score for %s is not an integer", trait)
		}
		scores[trait] = int(number)
	}
	return scores, nil
}
