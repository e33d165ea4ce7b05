package models

import "time"

// RunStatus is the terminal state of a run
type RunStatus string

const (
	RunStatusCompleted   RunStatus = "COMPLETED"
	RunStatusInterrupted RunStatus = "INTERRUPTED"
)

// VariantStats counts pass outcomes for one variant
type VariantStats struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RunSummary describes one coordinator run.
type RunSummary struct {
	RunID        string                   `json:"run_id"`
	RunDirectory string                   `json:"run_directory"`
	Status       RunStatus                `json:"status"`
	StartedAt    time.Time                `json:"started_at"`
	FinishedAt   time.Time                `json:"finished_at"`
	TotalURLs    int                      `json:"total_urls"`
	AuditedURLs  int                      `json:"audited_urls"`
	Stats        map[Variant]VariantStats `json:"stats"`
	Failures     []AuditOutcome           `json:"-"`
	SummaryFiles []string                 `json:"summary_files,omitempty"`
}

// NewRunSummary creates an empty summary with zeroed per-variant stats
func NewRunSummary(runID string, startedAt time.Time) *RunSummary {
	stats := make(map[Variant]VariantStats, 2)
	for _, v := range AllVariants() {
		stats[v] = VariantStats{}
	}
	return &RunSummary{
		RunID:     runID,
		Status:    RunStatusCompleted,
		StartedAt: startedAt,
		Stats:     stats,
	}
}

// RecordOutcome updates the per-variant counters and the failure list.
func (s *RunSummary) RecordOutcome(o AuditOutcome) {
	st := s.Stats[o.Variant]
	if o.Succeeded() {
		st.Succeeded++
	} else {
		st.Failed++
		s.Failures = append(s.Failures, o)
	}
	s.Stats[o.Variant] = st
}

// FailedCount returns the number of failed passes across variants
func (s *RunSummary) FailedCount() int {
	n := 0
	for _, st := range s.Stats {
		n += st.Failed
	}
	return n
}

// Duration returns the wall time of the run
func (s *RunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
