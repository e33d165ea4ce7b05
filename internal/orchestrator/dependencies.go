package orchestrator

import (
	"github.com/aleister1102/lhbatch/internal/audit"
	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/aleister1102/lhbatch/internal/history"
	"github.com/aleister1102/lhbatch/internal/progress"
	"github.com/aleister1102/lhbatch/internal/rslimiter"
	"github.com/aleister1102/lhbatch/internal/urlsource"
	"github.com/rs/zerolog"
)

// DefaultDependencies wires the production collaborators for cfg. RunLogger
// is left for the caller, which owns the log outputs.
func DefaultDependencies(cfg *config.GlobalConfig, logger zerolog.Logger) Dependencies {
	auditCfg := cfg.AuditConfig
	return Dependencies{
		Checker:  audit.NewToolChecker(auditCfg.ToolPath, auditCfg.InstallHint, nil, logger),
		Resolver: urlsource.NewResolver(cfg.InputConfig, logger),
		NewInvoker: func(toolPath string) AuditInvoker {
			return audit.NewInvoker(audit.NewExecRunner(), audit.InvokerConfig{
				ToolPath:    toolPath,
				ChromeFlags: auditCfg.ChromeFlags,
				Env:         audit.BrowserEnv(auditCfg.ChromePath, auditCfg.DiscoverChrome, nil, logger),
				Timeout:     auditCfg.Timeout(),
			}, logger)
		},
		Progress: progress.NewDisplay(logger, progress.DisplayConfig{
			DisplayInterval:   cfg.RunConfig.ProgressInterval(),
			EnableProgress:    cfg.RunConfig.ShowProgress,
			ShowETAEstimation: true,
		}),
		Guard: rslimiter.NewResourceLimiter(cfg.ResourceLimiterConfig, nil, logger),
		OpenHistory: func(path string) (HistoryStore, error) {
			db, err := history.NewDB(path, logger)
			if err != nil {
				return nil, err
			}
			return db, nil
		},
	}
}
