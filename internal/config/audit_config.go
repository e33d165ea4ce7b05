package config

import (
	"time"

	"github.com/aleister1102/lhbatch/internal/models"
)

// AuditConfig controls how the external audit tool is located and invoked
type AuditConfig struct {
	ToolPath         string   `json:"tool_path,omitempty" yaml:"tool_path,omitempty" validate:"required"`
	InstallHint      string   `json:"install_hint,omitempty" yaml:"install_hint,omitempty"`
	ChromeFlags      string   `json:"chrome_flags,omitempty" yaml:"chrome_flags,omitempty" validate:"required"`
	ChromePath       string   `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	DiscoverChrome   bool     `json:"discover_chrome" yaml:"discover_chrome"`
	DesktopPreset    string   `json:"desktop_preset,omitempty" yaml:"desktop_preset,omitempty" validate:"required"`
	ExtraFlags       []string `json:"extra_flags,omitempty" yaml:"extra_flags,omitempty" validate:"dive,required"`
	TimeoutSecs      int      `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	ParallelVariants bool     `json:"parallel_variants" yaml:"parallel_variants"`
	HTMLReports      bool     `json:"html_reports" yaml:"html_reports"`
}

// NewDefaultAuditConfig creates default audit configuration
func NewDefaultAuditConfig() AuditConfig {
	return AuditConfig{
		ToolPath:         DefaultAuditToolPath,
		InstallHint:      DefaultAuditInstallHint,
		ChromeFlags:      DefaultAuditChromeFlags,
		DiscoverChrome:   true,
		DesktopPreset:    DefaultAuditDesktopPreset,
		TimeoutSecs:      DefaultAuditTimeoutSecs,
		ParallelVariants: true,
		HTMLReports:      true,
	}
}

// Timeout returns the per-invocation timeout
func (c AuditConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// VariantProfiles resolves the flag set of every variant once, in audit order.
func (c AuditConfig) VariantProfiles() []models.VariantProfile {
	return models.BuildVariantProfiles(c.DesktopPreset, c.ExtraFlags)
}
