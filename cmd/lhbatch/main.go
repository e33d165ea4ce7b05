package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/aleister1102/lhbatch/internal/logger"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/aleister1102/lhbatch/internal/orchestrator"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "lhbatch",
		Usage:     "run Lighthouse audits for a batch of URLs in mobile and desktop mode",
		UsageText: usageLine,
		Flags:     appFlags(),
		Commands:  []*cli.Command{historyCommand()},
		Action: func(c *cli.Context) error {
			return run(c.Context, flagsFromContext(c))
		},
	}

	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(parent context.Context, flags AppFlags) error {
	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, zerolog.Nop())
	if err != nil {
		return cli.Exit(fmt.Sprintf("[FATAL] Could not load global config using path '%s': %v", flags.GlobalConfigFile, err), 1)
	}
	flags.Apply(gCfg)

	if err := config.ValidateConfig(gCfg); err != nil {
		return cli.Exit(fmt.Sprintf("[FATAL] Configuration validation failed: %v", err), 1)
	}

	appLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("[FATAL] Could not initialize logger: %v", err), 1)
	}
	defer func() {
		_ = appLogger.Close()
	}()
	zLogger := *appLogger.GetZerolog()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := orchestrator.DefaultDependencies(gCfg, zLogger)
	deps.RunLogger = func(runDir string) (zerolog.Logger, func() error, error) {
		runLogger, err := appLogger.WithRunFile(filepath.Join(runDir, config.DefaultRunLogFile))
		if err != nil {
			return zerolog.Logger{}, nil, err
		}
		return *runLogger.GetZerolog(), runLogger.Close, nil
	}

	coordinator := orchestrator.NewCoordinator(gCfg, deps, zLogger)
	summary, err := coordinator.Run(ctx, orchestrator.Request{FilePath: flags.URLFile, Args: flags.URLs})
	switch {
	case errors.Is(err, models.ErrNoURLsResolved):
		zLogger.Error().Msg("No URLs to audit")
		return cli.Exit(usageLine, 1)
	case err != nil:
		return cli.Exit("", 1)
	}

	if summary.Status == models.RunStatusInterrupted {
		zLogger.Warn().Str("run_dir", summary.RunDirectory).Msg("Interrupted; partial results were saved")
	}
	return nil
}
