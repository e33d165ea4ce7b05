package progress

import (
	"sync"
	"time"
)

// Progress tracks how many URLs of a run are done. Safe for concurrent use.
type Progress struct {
	mu   sync.RWMutex
	info ProgressInfo
	now  func() time.Time
}

// NewProgress creates an idle tracker
func NewProgress() *Progress {
	return &Progress{
		info: ProgressInfo{Status: ProgressStatusIdle},
		now:  time.Now,
	}
}

// Info returns a copy of the current snapshot
func (p *Progress) Info() ProgressInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// Begin resets the tracker for a run of total URLs
func (p *Progress) Begin(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.info = ProgressInfo{
		Status:         ProgressStatusRunning,
		Total:          int64(total),
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// SetStage records what is being worked on
func (p *Progress) SetStage(stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Stage = stage
	p.info.LastUpdateTime = p.now()
}

// Advance marks one more URL as done
func (p *Progress) Advance(failedPasses int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.info.Current++
	p.info.FailedPasses += failedPasses
	p.info.LastUpdateTime = now
	p.info.UpdateETA(now)
}

// SetStatus sets the final or intermediate status
func (p *Progress) SetStatus(status ProgressStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Status = status
	p.info.LastUpdateTime = p.now()
	if status != ProgressStatusRunning {
		p.info.EstimatedETA = 0
	}
}
