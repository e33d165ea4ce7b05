package orchestrator

import (
	"context"
	"time"

	"github.com/aleister1102/lhbatch/internal/models"
)

// ToolChecker verifies the audit tool before any work starts
type ToolChecker interface {
	Check() (string, error)
}

// URLResolver produces the ordered URL list of a run
type URLResolver interface {
	Resolve(filePath string, args []string) ([]string, error)
}

// AuditInvoker runs the audit tool for one URL and variant
type AuditInvoker interface {
	InvokeJSON(ctx context.Context, url string, profile models.VariantProfile) (*models.Report, error)
	InvokeHTML(ctx context.Context, url string, profile models.VariantProfile, outputPath string) (string, error)
}

// CapacityGuard is consulted before each URL
type CapacityGuard interface {
	WaitForCapacity(ctx context.Context) error
}

// HistoryStore records runs and their passes
type HistoryStore interface {
	RecordRunStart(ctx context.Context, runID, runDirectory string, totalURLs int, startedAt time.Time) error
	RecordAudit(ctx context.Context, runID string, outcome models.AuditOutcome) error
	RecordRunCompletion(ctx context.Context, summary *models.RunSummary) error
	Close() error
}

// ProgressTracker follows URL completion for display
type ProgressTracker interface {
	Begin(total int)
	URLStarted(url string)
	URLDone(failedPasses int)
	Finish(interrupted bool)
}

type noopProgress struct{}

func (noopProgress) Begin(int)         {}
func (noopProgress) URLStarted(string) {}
func (noopProgress) URLDone(int)       {}
func (noopProgress) Finish(bool)       {}
