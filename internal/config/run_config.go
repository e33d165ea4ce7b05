package config

import "time"

// RunConfig controls where and how the per-run directory is created
type RunConfig struct {
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" validate:"required"`
	DirPrefix string `json:"dir_prefix,omitempty" yaml:"dir_prefix,omitempty" validate:"required"`
	DirFormat string `json:"dir_format,omitempty" yaml:"dir_format,omitempty" validate:"omitempty,dirformat"`

	ShowProgress         bool `json:"show_progress" yaml:"show_progress"`
	ProgressIntervalSecs int  `json:"progress_interval_secs,omitempty" yaml:"progress_interval_secs,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultRunConfig creates default run directory configuration
func NewDefaultRunConfig() RunConfig {
	return RunConfig{
		OutputDir: DefaultRunOutputDir,
		DirPrefix: DefaultRunDirPrefix,
		DirFormat: DefaultRunDirFormat,

		ShowProgress:         true,
		ProgressIntervalSecs: DefaultRunProgressIntervalSecs,
	}
}

// ProgressInterval returns the periodic progress log interval
func (c RunConfig) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalSecs) * time.Second
}
