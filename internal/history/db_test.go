package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "nested", "history.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, db.RecordRunStart(ctx, "run-1", "/out/run-1", 2, started))

	record := &models.SummaryRecord{URL: "https://a.com", ScorePerformance: 90}
	require.NoError(t, db.RecordAudit(ctx, "run-1", models.AuditOutcome{
		URL: "https://a.com", Variant: models.VariantMobile, Record: record,
		JSONPath: "/out/run-1/a_com_mobile.json", Duration: 1500 * time.Millisecond,
	}))
	require.NoError(t, db.RecordAudit(ctx, "run-1", models.AuditOutcome{
		URL: "https://b.com", Variant: models.VariantDesktop, Err: errors.New("exit code 1"),
	}))

	summary := models.NewRunSummary("run-1", started)
	summary.RecordOutcome(models.AuditOutcome{URL: "https://a.com", Variant: models.VariantMobile, Record: record})
	summary.RecordOutcome(models.AuditOutcome{URL: "https://b.com", Variant: models.VariantDesktop, Err: errors.New("x")})
	summary.FinishedAt = started.Add(time.Minute)
	require.NoError(t, db.RecordRunCompletion(ctx, summary))

	runs, err := db.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].RunID)
	assert.Equal(t, "COMPLETED", runs[0].Status)
	assert.Equal(t, 2, runs[0].TotalURLs)
	assert.Equal(t, 1, runs[0].Succeeded)
	assert.Equal(t, 1, runs[0].Failed)
	assert.True(t, runs[0].FinishedAt.Valid)
	assert.True(t, runs[0].StartedAt.Equal(started))

	counts, err := db.CountAudits(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{AuditStatusSucceeded: 1, AuditStatusFailed: 1}, counts)
}

func TestDB_ListRunsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "middle", "new"} {
		require.NoError(t, db.RecordRunStart(ctx, id, "/out/"+id, 1, base.Add(time.Duration(i)*time.Hour)))
	}

	runs, err := db.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].RunID)
	assert.Equal(t, "middle", runs[1].RunID)
	assert.Equal(t, "STARTED", runs[0].Status)
	assert.False(t, runs[0].FinishedAt.Valid)

	all, err := db.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDB_DuplicateRunID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	now := time.Now()

	require.NoError(t, db.RecordRunStart(ctx, "dup", "/a", 1, now))
	assert.Error(t, db.RecordRunStart(ctx, "dup", "/b", 1, now))
}

func TestDB_CompletionForUnknownRun(t *testing.T) {
	db := openTestDB(t)
	summary := models.NewRunSummary("ghost", time.Now())
	summary.FinishedAt = time.Now()

	assert.Error(t, db.RecordRunCompletion(context.Background(), summary))
}

func TestDB_ReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := NewDB(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.RecordRunStart(ctx, "run-1", "/out", 1, time.Now()))
	require.NoError(t, db.Close())

	db, err = NewDB(path, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
