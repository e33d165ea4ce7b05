package logger

import (
	"io"

	"github.com/aleister1102/lhbatch/internal/common"
	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
	writers []io.Writer
	closers []io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Config returns the configuration the logger was built from
func (l *Logger) Config() LoggerConfig {
	return l.config
}

// WithRunFile returns a sibling logger that shares the receiver's writers and
// additionally writes to path. Closing it only closes the run file.
func (l *Logger) WithRunFile(path string) (*Logger, error) {
	if path == "" {
		return nil, common.NewValidationError("run_file_path", path, "path required")
	}
	cfg := l.config
	cfg.RunFilePath = path

	w, c := NewWriterFactory().CreateFileWriter(path, cfg)
	writers := append(append([]io.Writer{}, l.writers...), w)
	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()

	return &Logger{
		zerolog: zl,
		config:  cfg,
		writers: writers,
		closers: []io.Closer{c},
	}, nil
}

// Close flushes and closes any file writers
func (l *Logger) Close() error {
	collector := common.NewErrorCollector()
	for _, c := range l.closers {
		collector.Add(c.Close())
	}
	l.closers = nil
	return collector.Error()
}

// New creates a new logger instance from the application log configuration
func New(cfg config.LogConfig) (*Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
