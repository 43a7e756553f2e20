package asciidoc

import (
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/adocnav/internal/logfields"
)

// ReadLines reads a source file and returns its lines in order.
// An unreadable file degrades to an empty sequence with a warning; callers
// treat it like a file with no headings and no includes.
func ReadLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Could not read source file", logfields.Path(path), logfields.Error(err))
		return nil
	}
	return SplitLines(string(data))
}

// SplitLines splits text into lines, tolerating CRLF endings. A single
// trailing newline does not produce an empty final line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Head returns up to n leading lines of a file, for diagnostics on pages
// whose title could not be resolved.
func Head(path string, n int) []string {
	lines := ReadLines(path)
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
