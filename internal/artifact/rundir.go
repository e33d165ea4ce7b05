package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/lhbatch/internal/common"
	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/rs/zerolog"
)

// Timestamp layouts for the run directory name
const (
	MinuteLayout = "2006-01-02_15-04"
	SecondLayout = "2006-01-02_15-04-05-0700"
)

const maxDirSuffix = 1000

// RunDirectory creates the timestamp-named directory that owns one run's artifacts.
type RunDirectory struct {
	parent string
	prefix string
	layout string
	logger zerolog.Logger
}

// NewRunDirectory creates a run directory factory from the run configuration
func NewRunDirectory(cfg config.RunConfig, logger zerolog.Logger) *RunDirectory {
	layout := MinuteLayout
	if cfg.DirFormat == config.DirFormatSecond {
		layout = SecondLayout
	}
	parent := cfg.OutputDir
	if parent == "" {
		parent = config.DefaultRunOutputDir
	}
	prefix := cfg.DirPrefix
	if prefix == "" {
		prefix = config.DefaultRunDirPrefix
	}
	return &RunDirectory{
		parent: parent,
		prefix: prefix,
		layout: layout,
		logger: logger.With().Str("component", "RunDirectory").Logger(),
	}
}

// Name returns the sanitized directory name for now
func (rd *RunDirectory) Name(now time.Time) string {
	return sanitizeDirName(rd.prefix + "_" + now.Format(rd.layout))
}

// Create makes the run directory and returns its absolute path. When the name
// is taken a numeric suffix (_2, _3, ...) is appended.
func (rd *RunDirectory) Create(now time.Time) (string, error) {
	if err := os.MkdirAll(rd.parent, 0755); err != nil {
		return "", common.WrapErrorf(err, "failed to create output directory %s", rd.parent)
	}

	base := rd.Name(now)
	for i := 1; i <= maxDirSuffix; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		path := filepath.Join(rd.parent, name)

		err := os.Mkdir(path, 0755)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", common.WrapErrorf(err, "failed to create run directory %s", path)
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return "", common.WrapError(err, "failed to resolve run directory")
		}
		rd.logger.Info().Str("path", abs).Msg("Run directory created")
		return abs, nil
	}
	return "", common.NewError("no free run directory name for %s after %d attempts", base, maxDirSuffix)
}
