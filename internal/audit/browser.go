package audit

import (
	"github.com/go-rod/rod/lib/launcher"
	"github.com/rs/zerolog"
)

// ChromePathEnv is read by the audit tool to pick the browser binary
const ChromePathEnv = "CHROME_PATH"

// BrowserLookupFunc locates a local Chromium build
type BrowserLookupFunc func() (string, bool)

// BrowserEnv returns the environment additions pointing the audit tool at a
// browser. An explicit chromePath wins; otherwise lookup is consulted when
// discover is set. Nothing found is only a warning since the tool has its own lookup.
func BrowserEnv(chromePath string, discover bool, lookup BrowserLookupFunc, logger zerolog.Logger) []string {
	if chromePath != "" {
		return []string{ChromePathEnv + "=" + chromePath}
	}
	if !discover {
		return nil
	}
	if lookup == nil {
		lookup = launcher.LookPath
	}
	found, ok := lookup()
	if !ok || found == "" {
		logger.Warn().Msg("No local Chromium found; the audit tool will use its own browser lookup")
		return nil
	}
	logger.Info().Str("chrome_path", found).Msg("Using discovered browser")
	return []string{ChromePathEnv + "=" + found}
}
