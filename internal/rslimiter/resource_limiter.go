package rslimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryStatFunc reports system memory usage as a fraction in [0,1]
type MemoryStatFunc func() (float64, error)

// SystemMemoryUsage reads the used fraction of system memory via gopsutil
func SystemMemoryUsage() (float64, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("failed to get system memory stats: %w", err)
	}
	return vmStat.UsedPercent / 100.0, nil
}

// ResourceLimiter holds back new audits while system memory is above a threshold.
type ResourceLimiter struct {
	config config.ResourceLimiterConfig
	logger zerolog.Logger
	stat   MemoryStatFunc
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewResourceLimiter creates a limiter; a nil stat uses SystemMemoryUsage
func NewResourceLimiter(cfg config.ResourceLimiterConfig, stat MemoryStatFunc, logger zerolog.Logger) *ResourceLimiter {
	if cfg.SystemMemThreshold == 0 {
		cfg.SystemMemThreshold = config.DefaultResourceSystemMemThreshold
	}
	if cfg.PollIntervalSecs <= 0 {
		cfg.PollIntervalSecs = config.DefaultResourcePollIntervalSecs
	}
	if stat == nil {
		stat = SystemMemoryUsage
	}
	return &ResourceLimiter{
		config: cfg,
		logger: logger.With().Str("component", "ResourceLimiter").Logger(),
		stat:   stat,
		sleep:  sleepContext,
	}
}

// CheckSystemMemoryLimit reports whether usage is above the threshold, and the usage itself.
func (rl *ResourceLimiter) CheckSystemMemoryLimit() (bool, float64, error) {
	used, err := rl.stat()
	if err != nil {
		return false, 0, err
	}
	return used > rl.config.SystemMemThreshold, used, nil
}

// WaitForCapacity blocks while memory usage is above the threshold, polling
// every PollInterval for at most MaxWait. It returns early only when ctx is
// done; after MaxWait it logs a warning and lets the caller proceed.
func (rl *ResourceLimiter) WaitForCapacity(ctx context.Context) error {
	if !rl.config.Enabled {
		return nil
	}

	deadline := time.Now().Add(rl.config.MaxWait())
	waited := false
	for {
		over, used, err := rl.CheckSystemMemoryLimit()
		if err != nil {
			rl.logger.Warn().Err(err).Msg("Memory check failed, not waiting")
			return nil
		}
		if !over {
			if waited {
				rl.logger.Info().Float64("used_percent", used*100).Msg("Memory usage back under threshold")
			}
			return nil
		}
		if !time.Now().Before(deadline) {
			rl.logger.Warn().
				Float64("used_percent", used*100).
				Float64("threshold_percent", rl.config.SystemMemThreshold*100).
				Dur("waited", rl.config.MaxWait()).
				Msg("System memory still above threshold, continuing anyway")
			return nil
		}

		if !waited {
			rl.logger.Warn().
				Float64("used_percent", used*100).
				Float64("threshold_percent", rl.config.SystemMemThreshold*100).
				Msg("System memory usage exceeded threshold, waiting before next audit")
			waited = true
		}
		if err := rl.sleep(ctx, rl.config.PollInterval()); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
