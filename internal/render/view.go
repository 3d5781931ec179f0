package render

import (
	"github.com/BerylCAtieno/persona-insights/internal/models"
)

// Section is one titled text block of a report.
type Section struct {
	Title string
	Block models.TextBlock
}

// Sections returns the text sections of a report in display order.
func Sections(report *models.InsightReport) []Section {
	return []Section{
		{Title: "Demographic Profile", Block: report.Demographic},
		{Title: "Psychographic Profile", Block: report.Psychographic},
		{Title: "Challenge Analysis", Block: report.Challenges},
	}
}

// View is the template model of a rendered result. Exactly one of Report and Error is set.
type View struct {
	Report       *models.InsightReport
	Error        *models.ErrorReport
	Sections     []Section
	Radar        *Radar
	DownloadURL  string
	DownloadName string
}

// NewView prepares a result for the HTML template. The radar block is only built when the report
// carries persona scores.
func NewView(result models.Result, downloadURL string) View {
	switch r := result.(type) {
	case *models.InsightReport:
		view := View{
			Report:       r,
			Sections:     Sections(r),
			DownloadURL:  downloadURL,
			DownloadName: DownloadFilename,
		}
		if r.HasScores() {
			radar := NewRadar(r.PersonaScores)
			view.Radar = &radar
		}
		return view
	case *models.ErrorReport:
		return View{Error: r}
	default:
		return View{Error: &models.ErrorReport{Kind: models.ErrorKindParse, Message: "No insights generated."}}
	}
}
