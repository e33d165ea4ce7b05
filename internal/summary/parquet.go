package summary

import (
	"os"
	"strings"
	"time"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ParquetExporter writes summary records as parquet files next to the CSVs
type ParquetExporter struct {
	compression parquet.WriterOption
	logger      zerolog.Logger
	now         func() time.Time
}

// NewParquetExporter creates an exporter using codec (zstd, snappy, gzip or none)
func NewParquetExporter(codec string, logger zerolog.Logger) *ParquetExporter {
	logger = logger.With().Str("component", "ParquetExporter").Logger()
	return &ParquetExporter{
		compression: compressionOption(codec, logger),
		logger:      logger,
		now:         time.Now,
	}
}

func compressionOption(codec string, logger zerolog.Logger) parquet.WriterOption {
	switch strings.ToLower(codec) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "none", "uncompressed", "":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		logger.Warn().Str("codec", codec).Msg("Unsupported compression codec string, defaulting to Uncompressed")
		return parquet.Compression(&parquet.Uncompressed)
	}
}

// Export truncates path and writes one row per record.
func (e *ParquetExporter) Export(path, runID string, variant models.Variant, records []models.SummaryRecord) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			e.logger.Error().Err(closeErr).Str("path", path).Msg("Failed to close parquet file")
		}
	}()

	exportedAt := e.now().UnixMilli()
	writer := parquet.NewGenericWriter[models.ParquetScoreRow](file, e.compression)

	rows := make([]models.ParquetScoreRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.ToParquetRow(runID, variant, exportedAt))
	}
	if _, err := writer.Write(rows); err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	if err := writer.Close(); err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	e.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("Parquet export written")
	return nil
}

// ParquetName maps a CSV summary file name to its parquet sibling
func ParquetName(csvName string) string {
	return strings.TrimSuffix(csvName, ".csv") + ".parquet"
}
