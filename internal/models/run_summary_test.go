package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunSummary_RecordOutcome(t *testing.T) {
	started := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	s := NewRunSummary("run", started)
	record := &SummaryRecord{URL: "https://a.example"}

	s.RecordOutcome(AuditOutcome{URL: "https://a.example", Variant: VariantMobile, Record: record})
	s.RecordOutcome(AuditOutcome{URL: "https://a.example", Variant: VariantDesktop, Err: errors.New("boom")})
	s.RecordOutcome(AuditOutcome{URL: "https://b.example", Variant: VariantDesktop})

	assert.Equal(t, RunStatusCompleted, s.Status)
	assert.Equal(t, VariantStats{Succeeded: 1}, s.Stats[VariantMobile])
	assert.Equal(t, VariantStats{Failed: 2}, s.Stats[VariantDesktop])
	assert.Equal(t, 2, s.FailedCount())
	assert.Len(t, s.Failures, 2)

	assert.Zero(t, s.Duration())
	s.FinishedAt = started.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, s.Duration())
}

func TestAuditOutcome_Succeeded(t *testing.T) {
	assert.True(t, AuditOutcome{Record: &SummaryRecord{}}.Succeeded())
	assert.False(t, AuditOutcome{}.Succeeded())
	assert.False(t, AuditOutcome{Record: &SummaryRecord{}, Err: errors.New("x")}.Succeeded())
}

func TestSummaryRecord_ToParquetRow(t *testing.T) {
	r := SummaryRecord{URL: "https://a.example", ScorePerformance: 72.5, ScoreAccessibility: 90, ScoreBestPractices: 80, ScoreSEO: 70, ScorePWA: 60}

	row := r.ToParquetRow("run-1", VariantDesktop, 1700000000000)

	assert.Equal(t, "run-1", row.RunID)
	assert.Equal(t, "desktop", row.Variant)
	assert.Equal(t, 72.5, row.ScorePerformance)
	assert.Equal(t, int64(1700000000000), row.ExportedAt)
	assert.Equal(t, r.Scores(), []float64{72.5, 90, 80, 70, 60})
}
