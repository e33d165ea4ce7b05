package models

import "time"

// AuditOutcome is the result of one (URL, variant) pass.
type AuditOutcome struct {
	URL      string
	Variant  Variant
	JSONPath string
	HTMLPath string
	Record   *SummaryRecord
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the pass produced a summary record.
func (o AuditOutcome) Succeeded() bool {
	return o.Err == nil && o.Record != nil
}
