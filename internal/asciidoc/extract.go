package asciidoc

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/adocnav/internal/logfields"
	"git.home.luguber.info/inful/adocnav/internal/util/sets"
)

// Heading is one heading extracted from a source file. Level counts the
// leading '=' markers; Anchor is either an explicit [[id]] from the line
// immediately preceding the heading or derived from the title.
type Heading struct {
	Level  int
	Anchor string
	Title  string
}

var (
	includePattern = regexp.MustCompile(`include::([^\[\]]+)\[\]`)
	headingPattern = regexp.MustCompile(`^(=+)\s+(.+)$`)
)

// Scanner extracts includes, headings and titles from AsciiDoc sources.
// PartialsDir (absolute) marks a subtree whose files are never navigable
// include targets; SectionLevels selects which heading depths surface as
// sub-navigation; IgnoreTitles filters boilerplate section names.
type Scanner struct {
	PartialsDir   string
	SectionLevels sets.Set[int]
	IgnoreTitles  sets.Set[string]

	// Report, when set, receives every degradation the scanner tolerates
	// (unreadable file, missing include target) in addition to the warning
	// log. Check mode uses it to collect issues.
	Report func(err error, path string)
}

// NewScanner creates a scanner. ignoreTitles are matched case-insensitively.
func NewScanner(partialsDir string, sectionLevels []int, ignoreTitles []string) *Scanner {
	ignore := sets.New[string]()
	for _, t := range ignoreTitles {
		ignore.Add(strings.ToLower(strings.TrimSpace(t)))
	}
	return &Scanner{
		PartialsDir:   partialsDir,
		SectionLevels: sets.New(sectionLevels...),
		IgnoreTitles:  ignore,
	}
}

func (s *Scanner) report(err error, path string) {
	if s.Report != nil {
		s.Report(err, path)
	}
}

// read loads a file's lines, reporting unreadable files through the hook.
func (s *Scanner) read(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Could not read source file", logfields.Path(path), logfields.Error(err))
		s.report(ErrFileUnreadable, path)
		return nil
	}
	return SplitLines(string(data))
}

// skippable reports whether a (trimmed) line carries no structural meaning
// for navigation: blank lines, comments, attribute definitions and include
// directives.
func skippable(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, ":") ||
		strings.HasPrefix(line, "include::")
}

// anchorID returns the identifier of an explicit anchor line ("[[id]]"),
// or "" when the line is not an anchor marker.
func anchorID(line string) string {
	if strings.HasPrefix(line, "[[") && strings.HasSuffix(line, "]]") {
		return strings.TrimSpace(line[2 : len(line)-2])
	}
	return ""
}

// Includes returns the resolved, existing include targets of a file, in
// source order. Targets inside the partials subtree are skipped silently;
// missing targets are skipped with a warning.
func (s *Scanner) Includes(path string) []string {
	var includes []string
	for _, line := range s.read(path) {
		m := includePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rel := strings.TrimSpace(m[1])
		target := filepath.Clean(filepath.Join(filepath.Dir(path), rel))
		if s.inPartials(target) {
			continue
		}
		if _, err := os.Stat(target); err != nil {
			slog.Warn("Include file not found", logfields.Path(target), logfields.File(path))
			s.report(ErrIncludeNotFound, target)
			continue
		}
		includes = append(includes, target)
	}
	return includes
}

func (s *Scanner) inPartials(target string) bool {
	if s.PartialsDir == "" {
		return false
	}
	rel, err := filepath.Rel(s.PartialsDir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "."
}

// HasSectionHeadings reports whether the file contains any heading at the
// configured section levels. Unlike Sections this ignores the ignore-title
// list: aggregator classification cares about the presence of in-page
// structure, not whether it is navigable.
func (s *Scanner) HasSectionHeadings(path string) bool {
	for _, raw := range s.read(path) {
		if m := headingPattern.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
			if s.SectionLevels.Has(len(m[1])) {
				return true
			}
		}
	}
	return false
}

// Sections returns the in-page headings that qualify as sub-navigation:
// heading level in SectionLevels, title not on the ignore list. An anchor
// line immediately preceding a heading (skippable lines may intervene)
// donates its id; otherwise the anchor is derived from the title. A pending
// anchor is discarded when any other non-skippable line is encountered.
func (s *Scanner) Sections(path string) []Heading {
	var results []Heading
	pendingAnchor := ""

	for _, raw := range s.read(path) {
		line := strings.TrimSpace(raw)

		if id := anchorID(line); id != "" {
			pendingAnchor = id
			continue
		}
		if skippable(line) {
			continue
		}

		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			pendingAnchor = ""
			continue
		}

		level := len(m[1])
		title := strings.TrimSpace(m[2])
		if title != "" && s.SectionLevels.Has(level) && !s.IgnoreTitles.Has(strings.ToLower(title)) {
			anchor := pendingAnchor
			if anchor == "" {
				anchor = Slugify(title)
			}
			results = append(results, Heading{Level: level, Anchor: anchor, Title: title})
		}
		pendingAnchor = ""
	}
	return results
}
