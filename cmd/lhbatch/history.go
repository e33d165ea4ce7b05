package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/aleister1102/lhbatch/internal/history"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const defaultHistoryLimit = 10

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list recent runs recorded in the history database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "global YAML/JSON configuration file"},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "output directory holding the default history database"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: defaultHistoryLimit, Usage: "number of runs to show (0 for all)"},
		},
		Action: func(c *cli.Context) error {
			gCfg, err := config.LoadGlobalConfig(c.String("config"), zerolog.Nop())
			if err != nil {
				return cli.Exit(fmt.Sprintf("[FATAL] Could not load global config: %v", err), 1)
			}
			AppFlags{OutputDir: c.String("output-dir")}.Apply(gCfg)

			dbPath := gCfg.StorageConfig.ResolveHistoryDBPath(gCfg.RunConfig.OutputDir)
			db, err := history.NewDB(dbPath, zerolog.Nop())
			if err != nil {
				return cli.Exit(fmt.Sprintf("[FATAL] Could not open history database %s: %v", dbPath, err), 1)
			}
			defer func() {
				_ = db.Close()
			}()

			return printHistory(c.Context, c.App.Writer, db, c.Int("limit"))
		},
	}
}

func printHistory(ctx context.Context, out io.Writer, db *history.DB, limit int) error {
	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tSTATUS\tURLS\tPASSES OK\tPASSES FAILED\tDIRECTORY")
	for _, r := range runs {
		counts, err := db.CountAudits(ctx, r.RunID)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.RunID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Status,
			r.TotalURLs,
			counts[history.AuditStatusSucceeded],
			counts[history.AuditStatusFailed],
			r.RunDirectory,
		)
	}
	return tw.Flush()
}
