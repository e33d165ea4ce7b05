package progress

import "time"

// ProgressStatus is the state of a tracked run
type ProgressStatus string

const (
	ProgressStatusIdle      ProgressStatus = "IDLE"
	ProgressStatusRunning   ProgressStatus = "RUNNING"
	ProgressStatusComplete  ProgressStatus = "COMPLETE"
	ProgressStatusCancelled ProgressStatus = "CANCELLED"
)

// ProgressInfo is a snapshot of the URL progress of one run
type ProgressInfo struct {
	Status         ProgressStatus `json:"status"`
	Current        int64          `json:"current"`
	Total          int64          `json:"total"`
	FailedPasses   int            `json:"failed_passes"`
	Stage          string         `json:"stage"`
	StartTime      time.Time      `json:"start_time"`
	LastUpdateTime time.Time      `json:"last_update_time"`
	EstimatedETA   time.Duration  `json:"estimated_eta"`
}

// UpdateETA estimates the remaining time from the average time per URL so far
func (pi *ProgressInfo) UpdateETA(now time.Time) {
	if pi.Total <= 0 || pi.Current <= 0 || pi.Status != ProgressStatusRunning {
		pi.EstimatedETA = 0
		return
	}

	elapsed := now.Sub(pi.StartTime)
	remaining := pi.Total - pi.Current
	if elapsed <= 0 || remaining <= 0 {
		pi.EstimatedETA = 0
		return
	}

	perURL := elapsed / time.Duration(pi.Current)
	pi.EstimatedETA = perURL * time.Duration(remaining)
}

// GetPercentage returns completion in [0,100]
func (pi *ProgressInfo) GetPercentage() float64 {
	if pi.Total <= 0 {
		return 0.0
	}
	percentage := float64(pi.Current) * 100 / float64(pi.Total)
	if percentage > 100 {
		return 100.0
	}
	return percentage
}
