package summary

import (
	"fmt"
	"math"

	"github.com/aleister1102/lhbatch/internal/models"
)

// Summarize derives the five-score record of a report. Scores are scaled from
// [0,1] to [0,100] and rounded to two decimals. A category that is absent or
// has a null score yields models.ErrMissingCategory. auditedURL is used when
// the report does not carry its requested URL.
func Summarize(report *models.Report, auditedURL string) (models.SummaryRecord, error) {
	if report == nil {
		return models.SummaryRecord{}, fmt.Errorf("%w: empty report", models.ErrMissingCategory)
	}

	scores := make([]float64, len(models.SummaryCategories))
	for i, category := range models.SummaryCategories {
		score, ok := report.Score(category)
		if !ok {
			return models.SummaryRecord{}, fmt.Errorf("%w: %s", models.ErrMissingCategory, category)
		}
		scores[i] = scale(score)
	}

	url := report.RequestedURL
	if url == "" {
		url = auditedURL
	}

	return models.SummaryRecord{
		URL:                url,
		ScorePerformance:   scores[0],
		ScoreAccessibility: scores[1],
		ScoreBestPractices: scores[2],
		ScoreSEO:           scores[3],
		ScorePWA:           scores[4],
	}, nil
}

func scale(score float64) float64 {
	return math.Round(score*100*100) / 100
}

// Collection keeps the records of each variant in insertion order.
// It is owned by a single goroutine.
type Collection struct {
	records map[models.Variant][]models.SummaryRecord
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{records: make(map[models.Variant][]models.SummaryRecord, 2)}
}

// Add appends record to the variant's list
func (c *Collection) Add(variant models.Variant, record models.SummaryRecord) {
	c.records[variant] = append(c.records[variant], record)
}

// Records returns a copy of the variant's records
func (c *Collection) Records(variant models.Variant) []models.SummaryRecord {
	return append([]models.SummaryRecord(nil), c.records[variant]...)
}
