package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerLine = "URL,Performance Score,Accessibility Score,Best Practices Score,SEO Score,PWA Score\n"

var exampleRecord = models.SummaryRecord{
	URL:                "https://example.com",
	ScorePerformance:   100,
	ScoreAccessibility: 90,
	ScoreBestPractices: 80,
	ScoreSEO:           70,
	ScorePWA:           60,
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{
		100:               "100",
		73:                "73",
		72.5:              "72.5",
		0:                 "0",
		73.00000000000001: "73",
		33.333333:         "33.33",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatScore(in), "input %v", in)
	}
}

func TestCSVPersister_WriteAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lighthouse-scores.csv")
	p := NewCSVPersister(zerolog.Nop())

	second := exampleRecord
	second.URL = "https://example.com/a,b"
	second.ScorePWA = 72.5

	require.NoError(t, p.WriteAll(path, []models.SummaryRecord{exampleRecord, second}))

	assert.Equal(t, headerLine+
		"https://example.com,100,90,80,70,60\n"+
		"\"https://example.com/a,b\",100,90,80,70,72.5\n", readFile(t, path))
}

func TestCSVPersister_WriteAllTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	p := NewCSVPersister(zerolog.Nop())

	require.NoError(t, p.WriteAll(path, []models.SummaryRecord{exampleRecord, exampleRecord}))
	require.NoError(t, p.WriteAll(path, nil))

	assert.Equal(t, headerLine, readFile(t, path))
}

func TestCSVPersister_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	p := NewCSVPersister(zerolog.Nop())

	require.NoError(t, p.Append(path, exampleRecord))
	require.NoError(t, p.Append(path, exampleRecord))

	assert.Equal(t, headerLine+
		"https://example.com,100,90,80,70,60\n"+
		"https://example.com,100,90,80,70,60\n", readFile(t, path))
}

func TestCSVPersister_AppendMatchesWriteAll(t *testing.T) {
	dir := t.TempDir()
	p := NewCSVPersister(zerolog.Nop())
	records := []models.SummaryRecord{exampleRecord, {URL: "https://b.com", ScorePerformance: 50}}

	batch := filepath.Join(dir, "batch.csv")
	stream := filepath.Join(dir, "stream.csv")
	require.NoError(t, p.WriteAll(batch, records))
	for _, r := range records {
		require.NoError(t, p.Append(stream, r))
	}

	assert.Equal(t, readFile(t, batch), readFile(t, stream))
}

func TestCSVPersister_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "scores.csv")
	p := NewCSVPersister(zerolog.Nop())

	err := p.WriteAll(path, []models.SummaryRecord{exampleRecord})

	var persistErr *models.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, path, persistErr.Path)

	err = p.Append(path, exampleRecord)
	require.ErrorAs(t, err, &persistErr)
}
