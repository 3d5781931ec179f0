package cache

import (
	"time"

	"github.com/google/uuid"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

// ReportStore keeps recently rendered reports in memory so the result page can offer a download.
// Entries are lost on restart and expire after the TTL.
type ReportStore struct {
	reports *Expiring[string, *models.InsightReport]
}

func NewReportStore(maxSize int, ttl time.Duration) *ReportStore {
	return &ReportStore{reports: NewExpiring[string, *models.InsightReport](maxSize, ttl)}
}

// Put stores the report under a fresh ID and returns the ID.
func (s *ReportStore) Put(report *models.InsightReport) string {
	id := uuid.NewString()
	s.reports.Set(id, report)
	return id
}

// Get returns the report stored under id, if it has not expired.
func (s *ReportStore) Get(id string) (*models.InsightReport, bool) {
	return s.reports.Get(id)
}
