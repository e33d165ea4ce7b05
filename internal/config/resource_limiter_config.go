package config

import "time"

// ResourceLimiterConfig holds configuration for the memory guard consulted before each URL
type ResourceLimiterConfig struct {
	Enabled            bool    `json:"enabled" yaml:"enabled"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"omitempty,threshold"`
	PollIntervalSecs   int     `json:"poll_interval_secs,omitempty" yaml:"poll_interval_secs,omitempty" validate:"omitempty,min=1"`
	MaxWaitSecs        int     `json:"max_wait_secs,omitempty" yaml:"max_wait_secs,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:            true,
		SystemMemThreshold: DefaultResourceSystemMemThreshold,
		PollIntervalSecs:   DefaultResourcePollIntervalSecs,
		MaxWaitSecs:        DefaultResourceMaxWaitSecs,
	}
}

// PollInterval returns the polling interval as a duration
func (c ResourceLimiterConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSecs) * time.Second
}

// MaxWait returns the maximum wait as a duration
func (c ResourceLimiterConfig) MaxWait() time.Duration {
	return time.Duration(c.MaxWaitSecs) * time.Second
}
