package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aleister1102/lhbatch/internal/common"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
)

// InvokerConfig holds everything an Invoker needs per run
type InvokerConfig struct {
	ToolPath    string
	ChromeFlags string
	Env         []string
	Timeout     time.Duration
}

// Invoker runs the audit tool for one URL and one variant at a time. It is
// safe for concurrent use as long as the runner is.
type Invoker struct {
	runner CommandRunner
	cfg    InvokerConfig
	logger zerolog.Logger
}

// NewInvoker creates an invoker; a nil runner uses ExecRunner
func NewInvoker(runner CommandRunner, cfg InvokerConfig, logger zerolog.Logger) *Invoker {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Invoker{
		runner: runner,
		cfg:    cfg,
		logger: logger.With().Str("component", "AuditInvoker").Logger(),
	}
}

// InvokeJSON runs the tool with JSON output on stdout and decodes the report.
func (inv *Invoker) InvokeJSON(ctx context.Context, url string, profile models.VariantProfile) (*models.Report, error) {
	args := BuildArgs(url, profile, FormatJSON, "", inv.cfg.ChromeFlags)

	stdout, err := inv.invoke(ctx, url, profile.Variant, FormatJSON, args)
	if err != nil {
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal(stdout, &report); err != nil {
		return nil, &models.InvocationError{
			URL:     url,
			Variant: profile.Variant,
			Format:  FormatJSON,
			Err:     common.WrapError(err, "failed to decode report"),
		}
	}
	report.Raw = stdout
	return &report, nil
}

// InvokeHTML runs the tool with HTML output written by the tool to outputPath.
func (inv *Invoker) InvokeHTML(ctx context.Context, url string, profile models.VariantProfile, outputPath string) (string, error) {
	args := BuildArgs(url, profile, FormatHTML, outputPath, inv.cfg.ChromeFlags)

	if _, err := inv.invoke(ctx, url, profile.Variant, FormatHTML, args); err != nil {
		return "", err
	}
	return outputPath, nil
}

func (inv *Invoker) invoke(ctx context.Context, url string, variant models.Variant, format string, args []string) ([]byte, error) {
	runCtx := ctx
	if inv.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.cfg.Timeout)
		defer cancel()
	}

	logger := inv.logger.With().Str("url", url).Str("variant", variant.String()).Str("format", format).Logger()
	logger.Debug().Strs("args", args).Msg("Invoking audit tool")
	start := time.Now()

	stdout, stderr, exitCode, err := inv.runner.Run(runCtx, inv.cfg.ToolPath, args, inv.cfg.Env)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = common.WrapErrorf(models.ErrInvocationTimeout, "killed after %s", inv.cfg.Timeout)
		}
		return nil, &models.InvocationError{
			URL:      url,
			Variant:  variant,
			Format:   format,
			ExitCode: exitCode,
			Stderr:   string(stderr),
			Err:      err,
		}
	}
	if exitCode != 0 {
		return nil, &models.InvocationError{
			URL:      url,
			Variant:  variant,
			Format:   format,
			ExitCode: exitCode,
			Stderr:   string(stderr),
		}
	}

	logger.Debug().Dur("duration", time.Since(start)).Int("stdout_bytes", len(stdout)).Msg("Audit tool finished")
	return stdout, nil
}
