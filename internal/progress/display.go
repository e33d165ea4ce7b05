package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DisplayConfig controls the periodic progress log line
type DisplayConfig struct {
	DisplayInterval   time.Duration
	EnableProgress    bool
	ShowETAEstimation bool
}

// Display logs the progress of a run at a fixed interval and on every change.
type Display struct {
	progress       *Progress
	logger         zerolog.Logger
	config         DisplayConfig
	mutex          sync.Mutex
	isRunning      bool
	stopChan       chan struct{}
	doneChan       chan struct{}
	triggerDisplay chan struct{}
	lastDisplayed  string
}

// NewDisplay creates a display; a zero interval falls back to three seconds.
func NewDisplay(logger zerolog.Logger, config DisplayConfig) *Display {
	if config.DisplayInterval <= 0 {
		config.DisplayInterval = 3 * time.Second
	}
	return &Display{
		progress:       NewProgress(),
		logger:         logger.With().Str("component", "ProgressDisplay").Logger(),
		config:         config,
		triggerDisplay: make(chan struct{}, 1),
	}
}

// Begin starts tracking total URLs and the display loop
func (d *Display) Begin(total int) {
	d.progress.Begin(total)

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.isRunning || !d.config.EnableProgress {
		return
	}
	d.isRunning = true
	d.stopChan = make(chan struct{})
	d.doneChan = make(chan struct{})
	go d.displayLoop(time.NewTicker(d.config.DisplayInterval))
}

// URLStarted records the URL being audited
func (d *Display) URLStarted(url string) {
	d.progress.SetStage(url)
	d.trigger()
}

// URLDone counts a finished URL and its failed passes
func (d *Display) URLDone(failedPasses int) {
	d.progress.Advance(failedPasses)
	d.trigger()
}

// Finish prints the last line and stops the loop
func (d *Display) Finish(interrupted bool) {
	status := ProgressStatusComplete
	if interrupted {
		status = ProgressStatusCancelled
	}
	d.progress.SetStatus(status)
	d.progress.SetStage("")

	d.mutex.Lock()
	running := d.isRunning
	d.isRunning = false
	d.mutex.Unlock()

	if !running {
		return
	}
	close(d.stopChan)
	<-d.doneChan
	d.displayProgress()
}

func (d *Display) trigger() {
	select {
	case d.triggerDisplay <- struct{}{}:
	default:
	}
}

func (d *Display) displayLoop(ticker *time.Ticker) {
	defer close(d.doneChan)
	defer ticker.Stop()
	for {
		select {
		case <-d.stopChan:
			return
		case <-ticker.C:
			d.displayProgress()
		case <-d.triggerDisplay:
			d.displayProgress()
		}
	}
}

func (d *Display) displayProgress() {
	output := d.format(d.progress.Info())
	if output == "" || output == d.lastDisplayed {
		return
	}
	d.lastDisplayed = output
	d.logger.Info().Msg(output)
}

func (d *Display) format(info ProgressInfo) string {
	if info.Status == ProgressStatusIdle || info.Total <= 0 {
		return ""
	}

	var builder strings.Builder
	percentage := info.GetPercentage()
	fmt.Fprintf(&builder, "Audits: %s %s %.1f%% (%d/%d)",
		statusIcon(info.Status), progressBar(percentage, 20), percentage, info.Current, info.Total)

	if info.FailedPasses > 0 {
		fmt.Fprintf(&builder, " | failed passes: %d", info.FailedPasses)
	}
	if d.config.ShowETAEstimation && info.EstimatedETA > 0 && info.Status == ProgressStatusRunning {
		fmt.Fprintf(&builder, " | ETA: %s", formatDuration(info.EstimatedETA))
	}
	if info.Stage != "" {
		fmt.Fprintf(&builder, " | %s", info.Stage)
	}
	return builder.String()
}

func statusIcon(status ProgressStatus) string {
	switch status {
	case ProgressStatusRunning:
		return "⏳"
	case ProgressStatusComplete:
		return "✅"
	case ProgressStatusCancelled:
		return "🚫"
	default:
		return "💤"
	}
}

func progressBar(percentage float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int((percentage / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
