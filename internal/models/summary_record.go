package models

// SummaryRecord is the five-score row derived from one report, scores scaled to [0,100].
type SummaryRecord struct {
	URL                string  `json:"url"`
	ScorePerformance   float64 `json:"score_performance"`
	ScoreAccessibility float64 `json:"score_accessibility"`
	ScoreBestPractices float64 `json:"score_best_practices"`
	ScoreSEO           float64 `json:"score_seo"`
	ScorePWA           float64 `json:"score_pwa"`
}

// Scores returns the scores in CSV column order.
func (r SummaryRecord) Scores() []float64 {
	return []float64{
		r.ScorePerformance,
		r.ScoreAccessibility,
		r.ScoreBestPractices,
		r.ScoreSEO,
		r.ScorePWA,
	}
}
