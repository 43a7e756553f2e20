package asciidoc

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-{2,}`)
)

// Slugify derives an anchor identifier from a heading title: lowercased,
// punctuation stripped, whitespace collapsed to single hyphens, repeated
// hyphens collapsed, leading/trailing hyphens trimmed.
//
// The derivation is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
