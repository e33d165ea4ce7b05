package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	log, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, zerolog.InfoLevel, log.Config().Level)
	assert.NoError(t, log.Close())
}

func TestBuilder_JSONToConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "debug"

	log, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)
	defer log.Close()

	log.GetZerolog().Debug().Str("component", "test").Msg("hello")

	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestBuilder_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	log, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)
	defer log.Close()

	log.GetZerolog().Info().Msg("dropped")
	log.GetZerolog().Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestBuilder_InvalidMaxSize(t *testing.T) {
	cfg := DefaultLoggerConfig()
	cfg.MaxSizeMB = 0

	_, err := NewLoggerBuilder().WithLoggerConfig(cfg).Build()
	assert.Error(t, err)
}

func TestLogger_WithRunFile(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"

	base, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)
	defer base.Close()

	runLogPath := filepath.Join(t.TempDir(), "run", "lhbatch.log")
	runLogger, err := base.WithRunFile(runLogPath)
	require.NoError(t, err)

	runLogger.GetZerolog().Info().Msg("in run")
	require.NoError(t, runLogger.Close())

	content, err := os.ReadFile(runLogPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "in run")
	assert.Contains(t, buf.String(), "in run")
	assert.Empty(t, base.Config().RunFilePath)
}

func TestParsers(t *testing.T) {
	levels := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"DEBUG": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}
	lp := NewLogLevelParser()
	for in, want := range levels {
		got, err := lp.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := lp.ParseLevel("loud")
	assert.Error(t, err)

	fp := NewLogFormatParser()
	assert.Equal(t, FormatJSON, fp.ParseFormat("JSON"))
	assert.Equal(t, FormatText, fp.ParseFormat("text"))
	assert.Equal(t, FormatConsole, fp.ParseFormat("whatever"))
}
