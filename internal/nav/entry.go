package nav

import (
	"fmt"
	"strings"
)

// Entry is one navigation line: a link to Target (pages-relative, forward
// slashes), optionally fragment-anchored, nested Depth levels deep. Depth is
// clamped to [1, maxDepth] on construction; anchors are always taken from
// the target page's own headings, never synthesized elsewhere.
type Entry struct {
	Depth  int
	Target string
	Anchor string
	Title  string
}

// NewEntry constructs an entry with its depth clamped to [1, maxDepth].
func NewEntry(depth, maxDepth int, target, anchor, title string) Entry {
	if depth < 1 {
		depth = 1
	}
	if depth > maxDepth {
		depth = maxDepth
	}
	return Entry{Depth: depth, Target: target, Anchor: anchor, Title: title}
}

// Format renders the entry as an Antora nav line, nesting encoded by
// repeated '*' markers.
func (e Entry) Format() string {
	marker := strings.Repeat("*", e.Depth)
	if e.Anchor != "" {
		return fmt.Sprintf("%s xref:%s#%s[%s]", marker, e.Target, e.Anchor, e.Title)
	}
	return fmt.Sprintf("%s xref:%s[%s]", marker, e.Target, e.Title)
}

// Book groups the entries derived from one master file.
type Book struct {
	Master  string // pages-relative path of the master file
	Entries []Entry
}
