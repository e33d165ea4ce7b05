package audit

import (
	"fmt"
	"os/exec"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
)

// LookPathFunc resolves an executable name to a path
type LookPathFunc func(file string) (string, error)

// ToolChecker verifies that the audit tool is installed before a run starts
type ToolChecker struct {
	toolPath    string
	installHint string
	lookPath    LookPathFunc
	logger      zerolog.Logger
}

// NewToolChecker creates a checker; a nil lookPath uses exec.LookPath
func NewToolChecker(toolPath, installHint string, lookPath LookPathFunc, logger zerolog.Logger) *ToolChecker {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &ToolChecker{
		toolPath:    toolPath,
		installHint: installHint,
		lookPath:    lookPath,
		logger:      logger.With().Str("component", "ToolChecker").Logger(),
	}
}

// Check returns the resolved path of the tool, or models.ErrToolNotInstalled
// carrying the install hint.
func (tc *ToolChecker) Check() (string, error) {
	resolved, err := tc.lookPath(tc.toolPath)
	if err != nil {
		tc.logger.Debug().Err(err).Str("tool", tc.toolPath).Msg("Audit tool lookup failed")
		if tc.installHint == "" {
			return "", fmt.Errorf("%w: %s", models.ErrToolNotInstalled, tc.toolPath)
		}
		return "", fmt.Errorf("%w: %s (install it with %q)", models.ErrToolNotInstalled, tc.toolPath, tc.installHint)
	}
	tc.logger.Debug().Str("tool", tc.toolPath).Str("path", resolved).Msg("Audit tool found")
	return resolved, nil
}
