package artifact

import (
	"strings"

	"github.com/aleister1102/lhbatch/internal/models"
)

// FilenameFor derives the artifact file name of one URL and variant.
// The URL is lowercased, one leading scheme and a leading "www." are dropped,
// and every rune outside [a-z0-9] becomes '_'. Distinct URLs may map to the
// same name (e.g. "a.com/b" and "a.com?b"); the later write wins.
func FilenameFor(url string, variant models.Variant, ext string) string {
	name := strings.ToLower(url)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(name, scheme) {
			name = strings.TrimPrefix(name, scheme)
			break
		}
	}
	name = strings.TrimPrefix(name, "www.")

	var sb strings.Builder
	sb.Grow(len(name) + len(variant) + len(ext) + 2)
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	sb.WriteByte('_')
	sb.WriteString(variant.String())
	sb.WriteByte('.')
	sb.WriteString(ext)
	return sb.String()
}

// sanitizeDirName replaces every rune outside [a-zA-Z0-9] with '_'.
func sanitizeDirName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
}
