package config

import "path/filepath"

// StorageConfig defines configuration for run history and columnar exports
type StorageConfig struct {
	HistoryEnabled   bool   `json:"history_enabled" yaml:"history_enabled"`
	HistoryDBPath    string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty"`
	ParquetExport    bool   `json:"parquet_export" yaml:"parquet_export"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,oneof=zstd snappy gzip none"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HistoryEnabled:   false,
		ParquetExport:    false,
		CompressionCodec: DefaultStorageCompressionCodec,
	}
}

// ResolveHistoryDBPath returns the configured database path, or the default
// file inside outputDir when none is set.
func (c StorageConfig) ResolveHistoryDBPath(outputDir string) string {
	if c.HistoryDBPath != "" {
		return c.HistoryDBPath
	}
	return filepath.Join(outputDir, DefaultStorageHistoryDBName)
}
