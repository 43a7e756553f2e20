package asciidoc

// Sentinel errors for AsciiDoc scanning operations. These enable consistent
// classification of degradations encountered during a nav traversal.

import "errors"

var (
	// ErrFileUnreadable indicates a source file could not be read.
	ErrFileUnreadable = errors.New("source file unreadable")

	// ErrIncludeNotFound indicates an include directive points at a file that does not exist.
	ErrIncludeNotFound = errors.New("include target not found")

	// ErrUntitled indicates no qualifying heading was found in a file.
	ErrUntitled = errors.New("no qualifying heading found")
)
