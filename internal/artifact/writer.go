package artifact

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/lhbatch/internal/common"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
)

// Writer persists artifacts under one run directory. Existing files are overwritten.
type Writer struct {
	root        string
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewWriter creates a writer rooted at the run directory
func NewWriter(root string, logger zerolog.Logger) *Writer {
	return &Writer{
		root:        root,
		fileManager: common.NewFileManager(logger),
		logger:      logger.With().Str("component", "ArtifactWriter").Logger(),
	}
}

// Path returns the absolute location of name inside the run directory
func (w *Writer) Path(name string) string {
	return filepath.Join(w.root, name)
}

// Write stores data as name inside the run directory and returns its path.
func (w *Writer) Write(name string, data []byte) (string, error) {
	path := w.Path(name)
	if err := w.fileManager.WriteFile(path, data, 0644); err != nil {
		return "", common.WrapErrorf(err, "failed to write artifact %s", name)
	}
	return path, nil
}

// WriteJSONReport stores the raw report of url/variant, indented by two spaces.
func (w *Writer) WriteJSONReport(url string, variant models.Variant, raw []byte) (string, error) {
	data := raw
	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err == nil {
		data = indented.Bytes()
	} else {
		w.logger.Warn().Err(err).Str("url", url).Msg("Report is not valid JSON, writing as received")
	}

	path, err := w.Write(FilenameFor(url, variant, "json"), data)
	if err != nil {
		return "", err
	}
	w.logger.Debug().Str("url", url).Str("variant", variant.String()).Str("path", path).Msg("JSON report written")
	return path, nil
}

// HTMLReportPath is where the audit tool is asked to write the HTML report of url/variant.
func (w *Writer) HTMLReportPath(url string, variant models.Variant) string {
	return w.Path(FilenameFor(url, variant, "html"))
}
