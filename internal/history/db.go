package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Audit statuses stored in the audits table
const (
	AuditStatusSucceeded = "SUCCEEDED"
	AuditStatusFailed    = "FAILED"
	runStatusStarted     = "STARTED"
)

// DB wraps the SQL database connection and provides methods for interacting with run history.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunEntry represents a record in the runs table.
type RunEntry struct {
	ID           int64
	RunID        string
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	Status       string
	RunDirectory string
	TotalURLs    int
	Succeeded    int
	Failed       int
}

// NewDB opens (creating if needed) the history database and ensures the schema is set up.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "HistoryDB").Logger()
	logger.Debug().Str("db_path", dataSourceName).Msg("Initializing history database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// sqlite allows a single writer
	dbInstance.SetMaxOpenConns(1)

	db := &DB{
		db:     dbInstance,
		logger: logger,
	}

	if err := db.InitSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info().Str("path", dataSourceName).Msg("History database ready")
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// InitSchema creates the runs and audits tables if they don't already exist.
func (d *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		status TEXT NOT NULL,
		run_directory TEXT NOT NULL,
		total_urls INTEGER NOT NULL DEFAULT 0,
		succeeded INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS audits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		url TEXT NOT NULL,
		variant TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		json_path TEXT,
		html_path TEXT,
		score_performance REAL,
		score_accessibility REAL,
		score_best_practices REAL,
		score_seo REAL,
		score_pwa REAL,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_audits_run_id ON audits(run_id);
	`
	if _, err := d.db.Exec(query); err != nil {
		d.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	return nil
}

// RecordRunStart inserts a runs row with status STARTED.
func (d *DB) RecordRunStart(ctx context.Context, runID, runDirectory string, totalURLs int, startedAt time.Time) error {
	query := `INSERT INTO runs (run_id, started_at, status, run_directory, total_urls) VALUES (?, ?, ?, ?, ?)`
	if _, err := d.db.ExecContext(ctx, query, runID, startedAt, runStatusStarted, runDirectory, totalURLs); err != nil {
		return fmt.Errorf("failed to insert run start record: %w", err)
	}
	d.logger.Debug().Str("run_id", runID).Msg("Recorded run start")
	return nil
}

// RecordAudit stores the outcome of one (URL, variant) pass.
func (d *DB) RecordAudit(ctx context.Context, runID string, outcome models.AuditOutcome) error {
	status := AuditStatusSucceeded
	var errText sql.NullString
	if !outcome.Succeeded() {
		status = AuditStatusFailed
		if outcome.Err != nil {
			errText = sql.NullString{String: outcome.Err.Error(), Valid: true}
		}
	}

	var scores [5]sql.NullFloat64
	if outcome.Record != nil {
		for i, s := range outcome.Record.Scores() {
			scores[i] = sql.NullFloat64{Float64: s, Valid: true}
		}
	}

	query := `INSERT INTO audits (run_id, url, variant, status, error, json_path, html_path,
		score_performance, score_accessibility, score_best_practices, score_seo, score_pwa, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.ExecContext(ctx, query,
		runID, outcome.URL, outcome.Variant.String(), status, errText,
		nullString(outcome.JSONPath), nullString(outcome.HTMLPath),
		scores[0], scores[1], scores[2], scores[3], scores[4],
		outcome.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record for %s: %w", outcome.URL, err)
	}
	return nil
}

// RecordRunCompletion updates the runs row with the final counters.
func (d *DB) RecordRunCompletion(ctx context.Context, summary *models.RunSummary) error {
	succeeded := 0
	for _, st := range summary.Stats {
		succeeded += st.Succeeded
	}
	query := `UPDATE runs SET finished_at = ?, status = ?, succeeded = ?, failed = ? WHERE run_id = ?`
	result, err := d.db.ExecContext(ctx, query, summary.FinishedAt, string(summary.Status), succeeded, summary.FailedCount(), summary.RunID)
	if err != nil {
		return fmt.Errorf("failed to update run completion for %s: %w", summary.RunID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no run recorded with id %s", summary.RunID)
	}
	d.logger.Debug().Str("run_id", summary.RunID).Str("status", string(summary.Status)).Msg("Recorded run completion")
	return nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns all.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]RunEntry, error) {
	query := `SELECT id, run_id, started_at, finished_at, status, run_directory, total_urls, succeeded, failed
		FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.StartedAt, &e.FinishedAt, &e.Status, &e.RunDirectory, &e.TotalURLs, &e.Succeeded, &e.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountAudits returns how many audit rows a run has, split by status.
func (d *DB) CountAudits(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM audits WHERE run_id = ? GROUP BY status`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count audits: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan audit count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
