package asciidoc

import "strings"

// UntitledSentinel is returned as the title when a file contains no
// qualifying heading. Callers treat it as a signal to skip the page.
const UntitledSentinel = "Untitled"

// DocTitle resolves the display title of a book (master) file: the first
// level-1 heading. An explicit [[id]] immediately preceding it becomes the
// anchor; without one the anchor stays empty, the book entry links to the
// page itself.
func (s *Scanner) DocTitle(path string) (title, anchor string) {
	return resolveTitle(s.read(path), func(level int) bool { return level == 1 }, false)
}

// PageTitle resolves the display title of an included page: the first
// heading at level 2 or deeper. An explicit [[id]] immediately preceding it
// is used verbatim, otherwise the anchor is derived from the title.
func (s *Scanner) PageTitle(path string) (title, anchor string) {
	return resolveTitle(s.read(path), func(level int) bool { return level >= 2 }, true)
}

// IsUntitled reports whether a resolved title is the missing-heading sentinel.
func IsUntitled(title string) bool {
	return title == "" || strings.EqualFold(title, UntitledSentinel)
}

// resolveTitle scans for the first heading accepted by qualifies. An anchor
// marker carries over skippable lines to the next heading; any other
// non-skippable line, including a non-qualifying heading, discards it.
func resolveTitle(lines []string, qualifies func(level int) bool, deriveAnchor bool) (string, string) {
	pendingAnchor := ""

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if id := anchorID(line); id != "" {
			pendingAnchor = id
			continue
		}
		if skippable(line) {
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			if qualifies(len(m[1])) {
				title := strings.TrimSpace(m[2])
				anchor := pendingAnchor
				if anchor == "" && deriveAnchor {
					anchor = Slugify(title)
				}
				return title, anchor
			}
		}
		pendingAnchor = ""
	}
	return UntitledSentinel, ""
}
