package audit

import "github.com/aleister1102/lhbatch/internal/models"

// Output formats understood by the audit tool
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// BuildArgs assembles the argument vector of one invocation:
// url, the profile's flags, --output, an optional --output-path and --chrome-flags.
func BuildArgs(url string, profile models.VariantProfile, format, outputPath, chromeFlags string) []string {
	args := make([]string, 0, len(profile.PresetFlags)+4)
	args = append(args, url)
	args = append(args, profile.PresetFlags...)
	args = append(args, "--output="+format)
	if outputPath != "" {
		args = append(args, "--output-path="+outputPath)
	}
	if chromeFlags != "" {
		args = append(args, "--chrome-flags="+chromeFlags)
	}
	return args
}
