package render

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

// DownloadFilename is the name offered for the exported report.
const DownloadFilename = "marketing_insights.json"

// ExportJSON serializes the report as indented JSON without HTML escaping.
func ExportJSON(report *models.InsightReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to export")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}
