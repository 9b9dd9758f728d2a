package export

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases a workflow name and collapses whitespace runs to
// single hyphens, yielding the filename-safe form used by artifacts.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Filename builds the artifact filename for a workflow and role
// ("agent" or "command").
func Filename(name, role string) string {
	return Slugify(name) + "." + role + ".yaml"
}
