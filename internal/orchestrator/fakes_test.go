package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/aleister1102/lhbatch/internal/models"
)

type fakeChecker struct {
	path string
	err  error
}

func (f *fakeChecker) Check() (string, error) {
	return f.path, f.err
}

type fakeResolver struct {
	urls []string
	err  error
}

func (f *fakeResolver) Resolve(_ string, _ []string) ([]string, error) {
	return f.urls, f.err
}

type invocation struct {
	url     string
	variant models.Variant
	format  string
}

// fakeInvoker answers with a fixed score set unless the URL is listed in
// failures. onInvoke runs before every call.
type fakeInvoker struct {
	mu       sync.Mutex
	calls    []invocation
	scores   []float64
	failures map[string]error
	delays   map[models.Variant]time.Duration
	onInvoke func(url string, variant models.Variant)
}

func newFakeInvoker() *fakeInvoker {
	return &fakeInvoker{
		scores:   []float64{1, 0.9, 0.8, 0.7, 0.6},
		failures: map[string]error{},
		delays:   map[models.Variant]time.Duration{},
	}
}

func (f *fakeInvoker) record(url string, variant models.Variant, format string) {
	f.mu.Lock()
	f.calls = append(f.calls, invocation{url: url, variant: variant, format: format})
	hook := f.onInvoke
	delay := f.delays[variant]
	f.mu.Unlock()
	if hook != nil {
		hook(url, variant)
	}
	if delay > 0 {
		time.Sleep(delay)
	}
}

func (f *fakeInvoker) InvokeJSON(ctx context.Context, url string, profile models.VariantProfile) (*models.Report, error) {
	f.record(url, profile.Variant, "json")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.failures[url]; ok {
		return nil, &models.InvocationError{URL: url, Variant: profile.Variant, Format: "json", ExitCode: 1, Err: err}
	}

	cats := make(map[string]*models.Category, len(models.SummaryCategories))
	for i, id := range models.SummaryCategories {
		score := f.scores[i]
		cats[id] = &models.Category{ID: id, Score: &score}
	}
	report := &models.Report{RequestedURL: url, Categories: cats}
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	report.Raw = raw
	return report, nil
}

func (f *fakeInvoker) InvokeHTML(ctx context.Context, url string, profile models.VariantProfile, outputPath string) (string, error) {
	f.record(url, profile.Variant, "html")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.WriteFile(outputPath, []byte("<html></html>"), 0644); err != nil {
		return "", err
	}
	return outputPath, nil
}

func (f *fakeInvoker) callsFor(format string) []invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []invocation
	for _, c := range f.calls {
		if c.format == format {
			out = append(out, c)
		}
	}
	return out
}

type fakeGuard struct {
	calls int
	err   error
}

func (g *fakeGuard) WaitForCapacity(_ context.Context) error {
	g.calls++
	return g.err
}

type fakeHistory struct {
	started   bool
	audits    []models.AuditOutcome
	completed *models.RunSummary
	closed    bool
}

func (h *fakeHistory) RecordRunStart(_ context.Context, _, _ string, _ int, _ time.Time) error {
	h.started = true
	return nil
}

func (h *fakeHistory) RecordAudit(ctx context.Context, _ string, outcome models.AuditOutcome) error {
	if ctx.Err() != nil {
		return errors.New("history write with cancelled context")
	}
	h.audits = append(h.audits, outcome)
	return nil
}

func (h *fakeHistory) RecordRunCompletion(_ context.Context, summary *models.RunSummary) error {
	h.completed = summary
	return nil
}

func (h *fakeHistory) Close() error {
	h.closed = true
	return nil
}
