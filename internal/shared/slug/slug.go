package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// FromName derives a URL-safe slug from a display name: lowercase,
// non-alphanumeric runs collapse to a single hyphen, edges trimmed.
// An all-symbol name yields "".
func FromName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
