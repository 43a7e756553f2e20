package nav

import (
	"fmt"
	"os"
	"strings"
)

// bannerLine heads every generated nav file.
const bannerLine = "// WARNING: This file is generated. DO NOT EDIT DIRECTLY."

// Render flattens the books into the nav file text: a two-line generated
// banner, one line per entry, a blank line between books but not after the
// last, and a trailing newline.
func Render(books []Book) string {
	var sb strings.Builder
	sb.WriteString(bannerLine)
	sb.WriteString("\n\n")

	for i, book := range books {
		for _, e := range book.Entries {
			sb.WriteString(e.Format())
			sb.WriteByte('\n')
		}
		if i < len(books)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// WriteNav overwrites the destination nav file. This is the only write whose
// failure aborts the whole run.
func WriteNav(path string, books []Book) error {
	if err := os.WriteFile(path, []byte(Render(books)), 0o644); err != nil {
		return fmt.Errorf("failed to write navigation file %s: %w", path, err)
	}
	return nil
}

// CountEntries returns the total number of navigation entries across books.
func CountEntries(books []Book) int {
	n := 0
	for _, b := range books {
		n += len(b.Entries)
	}
	return n
}
