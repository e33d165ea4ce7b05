package orchestrator

import (
	"context"
	"path/filepath"
	"time"

	"github.com/aleister1102/lhbatch/internal/artifact"
	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/aleister1102/lhbatch/internal/reporter"
	"github.com/aleister1102/lhbatch/internal/rslimiter"
	"github.com/aleister1102/lhbatch/internal/summary"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is a step of the run state machine
type State string

const (
	StateCheckingTool       State = "CheckingTool"
	StateResolvingURLs      State = "ResolvingURLs"
	StatePreparingDirectory State = "PreparingDirectory"
	StatePerURL             State = "PerURL"
	StatePersisting         State = "Persisting"
	StateDone               State = "Done"
	StateFailed             State = "Failed"
)

// Request carries the URL source of one run
type Request struct {
	FilePath string
	Args     []string
}

// RunLoggerFunc derives a logger that also writes into the run directory.
// The returned close function releases the run log file.
type RunLoggerFunc func(runDir string) (zerolog.Logger, func() error, error)

// Dependencies are the collaborators of a Coordinator. Guard, OpenHistory,
// RunLogger and Progress are optional.
type Dependencies struct {
	Checker     ToolChecker
	Resolver    URLResolver
	NewInvoker  func(toolPath string) AuditInvoker
	Guard       CapacityGuard
	OpenHistory func(path string) (HistoryStore, error)
	RunLogger   RunLoggerFunc
	Progress    ProgressTracker
	Now         func() time.Time
}

// Coordinator drives one batch run: check the tool, resolve URLs, create the
// run directory, audit every URL in both variants and persist the summaries.
type Coordinator struct {
	cfg      *config.GlobalConfig
	deps     Dependencies
	logger   zerolog.Logger
	profiles []models.VariantProfile
	state    State
}

// NewCoordinator creates a coordinator; variant profiles are resolved here once.
func NewCoordinator(cfg *config.GlobalConfig, deps Dependencies, logger zerolog.Logger) *Coordinator {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Progress == nil {
		deps.Progress = noopProgress{}
	}
	return &Coordinator{
		cfg:      cfg,
		deps:     deps,
		logger:   logger.With().Str("component", "Coordinator").Logger(),
		profiles: cfg.AuditConfig.VariantProfiles(),
	}
}

// State returns the step the coordinator is in
func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.logger.Debug().Str("from", string(c.state)).Str("to", string(s)).Msg("State transition")
	c.state = s
}

// Run executes the whole batch. It returns an error only when the audit tool
// is missing, no URL could be resolved or the run directory cannot be created;
// per-URL failures are reported in the returned summary.
func (c *Coordinator) Run(ctx context.Context, req Request) (*models.RunSummary, error) {
	c.setState(StateCheckingTool)
	toolPath, err := c.deps.Checker.Check()
	if err != nil {
		c.setState(StateFailed)
		c.logger.Error().Err(err).Msg("The audit tool does not seem to be installed")
		return nil, err
	}

	c.setState(StateResolvingURLs)
	urls, err := c.deps.Resolver.Resolve(req.FilePath, req.Args)
	if err != nil {
		c.setState(StateFailed)
		return nil, err
	}

	c.setState(StatePreparingDirectory)
	startedAt := c.deps.Now()
	runDir, err := artifact.NewRunDirectory(c.cfg.RunConfig, c.logger).Create(startedAt)
	if err != nil {
		c.setState(StateFailed)
		c.logger.Error().Err(err).Msg("Could not create run directory")
		return nil, err
	}

	run := c.newRunContext(ctx, runDir, startedAt, len(urls))
	defer run.close()
	run.invoker = c.deps.NewInvoker(toolPath)

	c.setState(StatePerURL)
	c.deps.Progress.Begin(len(urls))
	c.auditAll(ctx, run, urls)
	c.deps.Progress.Finish(run.summary.Status == models.RunStatusInterrupted)

	c.setState(StatePersisting)
	c.persist(run)

	c.finish(run)
	c.setState(StateDone)
	return run.summary, nil
}

// runContext is the mutable state of one run, owned by the coordinating goroutine.
type runContext struct {
	logger      zerolog.Logger
	runDir      string
	summary     *models.RunSummary
	collection  *summary.Collection
	outcomes    []models.AuditOutcome
	writer      *artifact.Writer
	persister   *summary.CSVPersister
	invoker     AuditInvoker
	history     HistoryStore
	closers     []func() error
	summaryPath map[models.Variant]string
}

func (r *runContext) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.logger.Warn().Err(err).Msg("Failed to release run resource")
		}
	}
	r.closers = nil
}

func (c *Coordinator) newRunContext(ctx context.Context, runDir string, startedAt time.Time, totalURLs int) *runContext {
	runID := newRunID(runDir)
	run := &runContext{
		logger:     c.logger,
		runDir:     runDir,
		summary:    models.NewRunSummary(runID, startedAt),
		collection: summary.NewCollection(),
		summaryPath: map[models.Variant]string{
			models.VariantMobile:  filepath.Join(runDir, c.cfg.SummaryConfig.MobileFile),
			models.VariantDesktop: filepath.Join(runDir, c.cfg.SummaryConfig.DesktopFile),
		},
	}
	run.summary.RunDirectory = runDir
	run.summary.TotalURLs = totalURLs

	if c.cfg.LogConfig.RunLog && c.deps.RunLogger != nil {
		runLogger, closeFn, err := c.deps.RunLogger(runDir)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Run log unavailable, logging to the main outputs only")
		} else {
			run.logger = runLogger.With().Str("component", "Coordinator").Str("run_id", runID).Logger()
			run.closers = append(run.closers, closeFn)
		}
	}

	run.writer = artifact.NewWriter(runDir, run.logger)
	run.persister = summary.NewCSVPersister(run.logger)

	if c.cfg.StorageConfig.HistoryEnabled && c.deps.OpenHistory != nil {
		dbPath := c.cfg.StorageConfig.ResolveHistoryDBPath(c.cfg.RunConfig.OutputDir)
		store, err := c.deps.OpenHistory(dbPath)
		if err != nil {
			run.logger.Warn().Err(err).Str("path", dbPath).Msg("Run history unavailable")
		} else {
			run.closers = append(run.closers, store.Close)
			if err := store.RecordRunStart(ctx, runID, runDir, totalURLs, startedAt); err != nil {
				run.logger.Warn().Err(err).Msg("Failed to record run start, history disabled for this run")
			} else {
				run.history = store
			}
		}
	}

	run.logger.Info().Str("run_dir", runDir).Int("urls", totalURLs).Msg("Run started")
	return run
}

// newRunID names a run after its directory. The random suffix keeps ids
// unique when several output directories share one history database.
func newRunID(runDir string) string {
	return filepath.Base(runDir) + "-" + uuid.NewString()[:8]
}

// finish stamps the summary, writes the overview page and logs the outcome.
func (c *Coordinator) finish(run *runContext) {
	run.summary.FinishedAt = c.deps.Now()

	if c.cfg.ReporterConfig.Enabled {
		c.writeIndex(run)
	}

	if run.history != nil {
		if err := run.history.RecordRunCompletion(context.Background(), run.summary); err != nil {
			run.logger.Warn().Err(err).Msg("Failed to record run completion")
		}
	}

	event := run.logger.Info()
	if run.summary.Status == models.RunStatusInterrupted {
		event = run.logger.Warn()
	}
	event.
		Str("status", string(run.summary.Status)).
		Int("urls", run.summary.TotalURLs).
		Int("audited", run.summary.AuditedURLs).
		Int("mobile_ok", run.summary.Stats[models.VariantMobile].Succeeded).
		Int("desktop_ok", run.summary.Stats[models.VariantDesktop].Succeeded).
		Int("failed", run.summary.FailedCount()).
		Dur("duration", run.summary.Duration()).
		Str("run_dir", run.runDir).
		Msg("Run finished")

	if failures := collectFailures(run.summary.Failures); failures.HasErrors() {
		run.logger.Warn().Int("count", failures.Count()).Err(failures.Error()).Msg("Failed audits")
	}

	usage := rslimiter.GetResourceUsage()
	run.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int("goroutines", usage.Goroutines).
		Float64("system_mem_percent", usage.SystemMemUsedPercent).
		Msg("Resource usage at end of run")
}

func (c *Coordinator) writeIndex(run *runContext) {
	indexReporter, err := reporter.NewIndexReporter(c.cfg.ReporterConfig, run.logger)
	if err != nil {
		run.logger.Error().Err(err).Msg("Failed to initialise overview reporter")
		return
	}
	files := make(map[models.Variant]string, len(run.summaryPath))
	for _, path := range run.summary.SummaryFiles {
		for variant, p := range run.summaryPath {
			if p == path {
				files[variant] = path
			}
		}
	}
	data := indexReporter.BuildIndexData(run.summary, run.outcomes, files)
	if _, err := indexReporter.Generate(data, run.runDir); err != nil {
		run.logger.Error().Err(err).Msg("Failed to write overview page")
	}
}
