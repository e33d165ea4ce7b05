package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/lhbatch/internal/history"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHistory(t *testing.T) {
	ctx := context.Background()
	db, err := history.NewDB(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	require.NoError(t, printHistory(ctx, &buf, db, 10))
	assert.Equal(t, "No runs recorded.\n", buf.String())

	require.NoError(t, db.RecordRunStart(ctx, "lighthouse_audit_2024_03_09_14_05", "/out/run", 1, time.Now()))
	record := &models.SummaryRecord{URL: "https://a.example"}
	require.NoError(t, db.RecordAudit(ctx, "lighthouse_audit_2024_03_09_14_05", models.AuditOutcome{URL: "https://a.example", Variant: models.VariantMobile, Record: record}))
	require.NoError(t, db.RecordAudit(ctx, "lighthouse_audit_2024_03_09_14_05", models.AuditOutcome{URL: "https://a.example", Variant: models.VariantDesktop, Err: errors.New("boom")}))

	buf.Reset()
	require.NoError(t, printHistory(ctx, &buf, db, 10))

	out := buf.String()
	assert.Contains(t, out, "RUN")
	assert.Contains(t, out, "lighthouse_audit_2024_03_09_14_05")
	assert.Contains(t, out, "/out/run")
	assert.Regexp(t, `STARTED\s+1\s+1\s+1\s+/out/run`, out)
}
