package config

// ReporterConfig defines configuration for the run overview page
type ReporterConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	IndexFile   string `json:"index_file,omitempty" yaml:"index_file,omitempty" validate:"required"`
	ReportTitle string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Enabled:     true,
		IndexFile:   DefaultReporterIndexFile,
		ReportTitle: DefaultReporterReportTitle,
	}
}
