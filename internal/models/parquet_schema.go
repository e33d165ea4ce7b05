package models

// ParquetScoreRow defines the schema of the columnar score export.
// One row per summary record; the variant is a column so both
// variants can be concatenated for analysis.
type ParquetScoreRow struct {
	RunID              string  `parquet:"run_id"`
	URL                string  `parquet:"url"`
	Variant            string  `parquet:"variant"`
	ScorePerformance   float64 `parquet:"score_performance"`
	ScoreAccessibility float64 `parquet:"score_accessibility"`
	ScoreBestPractices float64 `parquet:"score_best_practices"`
	ScoreSEO           float64 `parquet:"score_seo"`
	ScorePWA           float64 `parquet:"score_pwa"`
	ExportedAt         int64   `parquet:"exported_at"` // unix millis
}

// ToParquetRow converts a summary record into its export row
func (r SummaryRecord) ToParquetRow(runID string, variant Variant, exportedAtMillis int64) ParquetScoreRow {
	return ParquetScoreRow{
		RunID:              runID,
		URL:                r.URL,
		Variant:            variant.String(),
		ScorePerformance:   r.ScorePerformance,
		ScoreAccessibility: r.ScoreAccessibility,
		ScoreBestPractices: r.ScoreBestPractices,
		ScoreSEO:           r.ScoreSEO,
		ScorePWA:           r.ScorePWA,
		ExportedAt:         exportedAtMillis,
	}
}
