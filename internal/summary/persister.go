package summary

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
)

// Header is the first row of every summary CSV
var Header = []string{
	"URL",
	"Performance Score",
	"Accessibility Score",
	"Best Practices Score",
	"SEO Score",
	"PWA Score",
}

// CSVPersister writes summary records to CSV files
type CSVPersister struct {
	logger zerolog.Logger
}

// NewCSVPersister creates a CSV persister
func NewCSVPersister(logger zerolog.Logger) *CSVPersister {
	return &CSVPersister{
		logger: logger.With().Str("component", "CSVPersister").Logger(),
	}
}

// WriteAll creates or truncates path and writes the header followed by records.
func (p *CSVPersister) WriteAll(path string, records []models.SummaryRecord) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	err = writeRows(file, true, records)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	p.logger.Info().Str("path", path).Int("rows", len(records)).Msg("Summary written")
	return nil
}

// Append adds record to path, writing the header first only when the file
// does not exist yet. Existing content is never rewritten.
func (p *CSVPersister) Append(path string, record models.SummaryRecord) error {
	_, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	err = writeRows(file, writeHeader, []models.SummaryRecord{record})
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	p.logger.Debug().Str("path", path).Str("url", record.URL).Msg("Summary row appended")
	return nil
}

func writeRows(w io.Writer, header bool, records []models.SummaryRecord) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(Header); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row renders a record as CSV fields
func Row(r models.SummaryRecord) []string {
	row := make([]string, 0, len(Header))
	row = append(row, r.URL)
	for _, s := range r.Scores() {
		row = append(row, FormatScore(s))
	}
	return row
}

// FormatScore renders a score with at most two decimals and no trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(math.Round(score*100)/100, 'f', -1, 64)
}
