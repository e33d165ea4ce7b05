package urlsource

import "strings"

// ParseLines splits data on "\n" and trims every line. Blank lines, including
// the one after a final newline, are kept as empty entries. Empty data has no lines.
func ParseLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
