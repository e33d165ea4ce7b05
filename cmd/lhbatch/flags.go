package main

import (
	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/urfave/cli/v2"
)

const usageLine = "Usage: lhbatch [-f <file>] <url1> <url2> ..."

// AppFlags holds the command line options that override the loaded configuration
type AppFlags struct {
	URLFile          string
	GlobalConfigFile string
	OutputDir        string
	TimeoutSecs      int
	SummaryMode      string
	DirFormat        string
	NoHTML           bool
	Sequential       bool
	LogLevel         string
	LogFile          string
	URLs             []string
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "text file with one URL per line, or a sitemap ending in .xml"},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "global YAML/JSON configuration file (searches default locations if unset)"},
		&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "parent directory of the run directory"},
		&cli.IntFlag{Name: "timeout", Usage: "per-invocation timeout in seconds"},
		&cli.StringFlag{Name: "summary-mode", Usage: "batch (write summaries at the end) or stream (append after each URL)"},
		&cli.StringFlag{Name: "dir-format", Usage: "run directory timestamp precision: minute or second"},
		&cli.BoolFlag{Name: "no-html", Usage: "skip HTML reports"},
		&cli.BoolFlag{Name: "sequential", Usage: "audit mobile and desktop one after the other"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		&cli.StringFlag{Name: "log-file", Usage: "also write logs to this rotating file"},
	}
}

func flagsFromContext(c *cli.Context) AppFlags {
	return AppFlags{
		URLFile:          c.String("file"),
		GlobalConfigFile: c.String("config"),
		OutputDir:        c.String("output-dir"),
		TimeoutSecs:      c.Int("timeout"),
		SummaryMode:      c.String("summary-mode"),
		DirFormat:        c.String("dir-format"),
		NoHTML:           c.Bool("no-html"),
		Sequential:       c.Bool("sequential"),
		LogLevel:         c.String("log-level"),
		LogFile:          c.String("log-file"),
		URLs:             c.Args().Slice(),
	}
}

// Apply overrides cfg with every flag that was given
func (f AppFlags) Apply(cfg *config.GlobalConfig) {
	if f.OutputDir != "" {
		cfg.RunConfig.OutputDir = f.OutputDir
	}
	if f.TimeoutSecs > 0 {
		cfg.AuditConfig.TimeoutSecs = f.TimeoutSecs
	}
	if f.SummaryMode != "" {
		cfg.SummaryConfig.Mode = f.SummaryMode
	}
	if f.DirFormat != "" {
		cfg.RunConfig.DirFormat = f.DirFormat
	}
	if f.NoHTML {
		cfg.AuditConfig.HTMLReports = false
	}
	if f.Sequential {
		cfg.AuditConfig.ParallelVariants = false
	}
	if f.LogLevel != "" {
		cfg.LogConfig.LogLevel = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.LogConfig.LogFile = f.LogFile
	}
}
