package config

// SummaryConfig controls when and where score summaries are persisted
type SummaryConfig struct {
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,summarymode"`
	MobileFile  string `json:"mobile_file,omitempty" yaml:"mobile_file,omitempty" validate:"required"`
	DesktopFile string `json:"desktop_file,omitempty" yaml:"desktop_file,omitempty" validate:"required,nefield=MobileFile"`
}

// NewDefaultSummaryConfig creates default summary configuration
func NewDefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{
		Mode:        DefaultSummaryMode,
		MobileFile:  DefaultSummaryMobileFile,
		DesktopFile: DefaultSummaryDesktopFile,
	}
}

// Streaming reports whether rows are appended after every URL
func (c SummaryConfig) Streaming() bool {
	return c.Mode == SummaryModeStream
}
