package evaluation

import (
	"regexp"
	"strings"
)

var (
	boldMarker   = regexp.MustCompile(`\*\*`)
	bulletMarker = regexp.MustCompile(`(?m)^[\t\v\f \x{85}\p{Z}]*(?:[-*\x{2022}][\s\v\x{85}\p{Z}]*)+`)
	blankRun     = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes model output before it is parsed.
// Line endings become LF, bold markers and leading bullets are dropped,
// blank-line runs are collapsed to a single empty line and the result is trimmed.
// Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := strings.ReplaceAll(text, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = boldMarker.ReplaceAllString(t, "")
	t = bulletMarker.ReplaceAllString(t, "")
	t = blankRun.ReplaceAllString(t, "\n\n")

	return strings.TrimSpace(t)
}
