package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/aleister1102/lhbatch/internal/common"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/aleister1102/lhbatch/internal/summary"
	"golang.org/x/sync/errgroup"
)

// auditAll walks the URL list in order. Cancellation stops the loop between
// URLs and marks the run interrupted; collected records are kept.
func (c *Coordinator) auditAll(ctx context.Context, run *runContext, urls []string) {
	for i, url := range urls {
		select {
		case <-ctx.Done():
			c.interrupt(run, len(urls)-i)
			return
		default:
		}

		if c.deps.Guard != nil {
			if err := c.deps.Guard.WaitForCapacity(ctx); err != nil {
				c.interrupt(run, len(urls)-i)
				return
			}
		}

		run.logger.Info().Int("index", i+1).Int("total", len(urls)).Str("url", url).Msg("Auditing URL")
		c.deps.Progress.URLStarted(url)
		outcomes := c.auditURL(ctx, run, url)

		if ctx.Err() != nil {
			// Passes cut short by cancellation are not failures of the URL.
			for _, o := range outcomes {
				if !errors.Is(o.Err, context.Canceled) {
					c.recordOutcome(ctx, run, o)
				}
			}
			c.interrupt(run, len(urls)-i-1)
			return
		}

		failed := 0
		for _, o := range outcomes {
			c.recordOutcome(ctx, run, o)
			if !o.Succeeded() {
				failed++
			}
		}
		run.summary.AuditedURLs++
		c.deps.Progress.URLDone(failed)
		run.logger.Info().Msgf("%s Audit Complete", url)
	}
}

func (c *Coordinator) interrupt(run *runContext, skipped int) {
	run.summary.Status = models.RunStatusInterrupted
	run.logger.Warn().Int("skipped_urls", skipped).Msg("Run interrupted, skipping remaining URLs")
}

// auditURL runs every variant pass for url and returns the outcomes in
// profile order, whether the passes ran concurrently or not.
func (c *Coordinator) auditURL(ctx context.Context, run *runContext, url string) []models.AuditOutcome {
	outcomes := make([]models.AuditOutcome, len(c.profiles))

	if !c.cfg.AuditConfig.ParallelVariants {
		for i, profile := range c.profiles {
			outcomes[i] = c.runPass(ctx, run, url, profile)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(len(c.profiles))
	for i, profile := range c.profiles {
		i, profile := i, profile
		g.Go(func() error {
			outcomes[i] = c.runPass(ctx, run, url, profile)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// runPass is one (URL, variant) pass: JSON invoke, JSON artifact, optional
// HTML invoke, summary. Any step failing fails the pass.
func (c *Coordinator) runPass(ctx context.Context, run *runContext, url string, profile models.VariantProfile) models.AuditOutcome {
	start := c.deps.Now()
	outcome := models.AuditOutcome{URL: url, Variant: profile.Variant}

	report, err := run.invoker.InvokeJSON(ctx, url, profile)
	if err != nil {
		outcome.Err = err
		return c.finishPass(run, outcome, start)
	}

	jsonPath, err := run.writer.WriteJSONReport(url, profile.Variant, report.Raw)
	if err != nil {
		outcome.Err = common.WrapError(err, "failed to write JSON report")
		return c.finishPass(run, outcome, start)
	}
	outcome.JSONPath = jsonPath

	if c.cfg.AuditConfig.HTMLReports {
		htmlPath, err := run.invoker.InvokeHTML(ctx, url, profile, run.writer.HTMLReportPath(url, profile.Variant))
		if err != nil {
			outcome.Err = err
			return c.finishPass(run, outcome, start)
		}
		outcome.HTMLPath = htmlPath
	}

	record, err := summary.Summarize(report, url)
	if err != nil {
		outcome.Err = err
		return c.finishPass(run, outcome, start)
	}
	outcome.Record = &record
	return c.finishPass(run, outcome, start)
}

func (c *Coordinator) finishPass(run *runContext, outcome models.AuditOutcome, start time.Time) models.AuditOutcome {
	outcome.Duration = c.deps.Now().Sub(start)
	if outcome.Err != nil {
		if errors.Is(outcome.Err, context.Canceled) {
			run.logger.Debug().Str("url", outcome.URL).Str("variant", outcome.Variant.String()).Msg("Pass cancelled")
		} else {
			run.logger.Error().Err(outcome.Err).Str("url", outcome.URL).Str("variant", outcome.Variant.String()).Msg("Audit pass failed")
		}
		return outcome
	}
	run.logger.Debug().Str("url", outcome.URL).Str("variant", outcome.Variant.String()).Str("json", outcome.JSONPath).Msg("Audit pass succeeded")
	return outcome
}

// recordOutcome feeds one pass into the run summary, the collection, the
// history store and, in stream mode, the variant's CSV.
func (c *Coordinator) recordOutcome(ctx context.Context, run *runContext, o models.AuditOutcome) {
	run.summary.RecordOutcome(o)
	run.outcomes = append(run.outcomes, o)

	if run.history != nil {
		if err := run.history.RecordAudit(context.WithoutCancel(ctx), run.summary.RunID, o); err != nil {
			run.logger.Warn().Err(err).Str("url", o.URL).Msg("Failed to record audit in history")
		}
	}

	if !o.Succeeded() {
		return
	}
	run.collection.Add(o.Variant, *o.Record)

	if c.cfg.SummaryConfig.Streaming() {
		if err := run.persister.Append(run.summaryPath[o.Variant], *o.Record); err != nil {
			run.logger.Error().Err(err).Msg("Failed to append summary row")
		}
	}
}

// persist writes the per-variant CSVs and the optional parquet and HTML
// outputs. Failures are logged and never undo other artifacts.
func (c *Coordinator) persist(run *runContext) {
	for _, variant := range models.AllVariants() {
		path := run.summaryPath[variant]
		records := run.collection.Records(variant)

		var err error
		if c.cfg.SummaryConfig.Streaming() {
			// Appending nothing still leaves a header-only file for variants without rows.
			if _, statErr := common.NewFileManager(run.logger).GetFileInfo(path); statErr != nil {
				err = run.persister.WriteAll(path, nil)
			}
		} else {
			err = run.persister.WriteAll(path, records)
		}
		if err != nil {
			run.logger.Error().Err(err).Str("variant", variant.String()).Msg("Failed to persist summary")
			continue
		}
		run.summary.SummaryFiles = append(run.summary.SummaryFiles, path)

		if c.cfg.StorageConfig.ParquetExport {
			exporter := summary.NewParquetExporter(c.cfg.StorageConfig.CompressionCodec, run.logger)
			parquetPath := filepath.Join(run.runDir, summary.ParquetName(filepath.Base(path)))
			if err := exporter.Export(parquetPath, run.summary.RunID, variant, records); err != nil {
				run.logger.Error().Err(err).Str("variant", variant.String()).Msg("Failed to export parquet summary")
			}
		}
	}
}

func collectFailures(failures []models.AuditOutcome) *common.ErrorCollector {
	collector := common.NewErrorCollector()
	for _, f := range failures {
		err := f.Err
		if err == nil {
			err = errors.New("unknown error")
		}
		collector.AddWithContext(err, f.URL+" ["+f.Variant.String()+"]")
	}
	return collector
}
