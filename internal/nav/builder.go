package nav

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/adocnav/internal/asciidoc"
	"git.home.luguber.info/inful/adocnav/internal/config"
	"git.home.luguber.info/inful/adocnav/internal/logfields"
	"git.home.luguber.info/inful/adocnav/internal/util/sets"
)

// headDumpLines bounds the diagnostic dump for pages whose title cannot be
// resolved.
const headDumpLines = 15

// visitKey guards against reprocessing the same page under the same master,
// which both deduplicates diamond-shaped include graphs and terminates
// cyclic ones.
type visitKey struct {
	path   string
	master string
}

// Builder walks the include graph of each configured master file and
// accumulates navigation entries. It owns all traversal state; one Builder
// serves one run.
type Builder struct {
	cfg     *config.Config
	scanner *asciidoc.Scanner
	aliases *AliasResolver
	visited sets.Set[visitKey]
	issues  []Issue
	dryRun  bool
}

// NewBuilder creates a builder for one traversal run. With dryRun set, no
// alias stubs are written; the traversal is otherwise identical.
func NewBuilder(cfg *config.Config, dryRun bool) *Builder {
	b := &Builder{
		cfg: cfg,
		aliases: &AliasResolver{
			Rules:    AliasTable(cfg.Aliases),
			PagesDir: cfg.PagesPath(),
		},
		visited: sets.New[visitKey](),
		dryRun:  dryRun,
	}
	b.scanner = asciidoc.NewScanner(cfg.PartialsPath(), cfg.Nav.SectionLevels, cfg.Nav.IgnoreTitles)
	b.scanner.Report = func(err error, path string) {
		kind := IssueUnreadableFile
		if errors.Is(err, asciidoc.ErrIncludeNotFound) {
			kind = IssueMissingInclude
		}
		b.issues = append(b.issues, Issue{Kind: kind, Path: path})
	}
	return b
}

// Issues returns the degradations collected during Build, in encounter order.
func (b *Builder) Issues() []Issue { return b.issues }

// Build processes every configured master in order and returns one Book per
// master that exists. Missing masters degrade to a warning.
func (b *Builder) Build() []Book {
	var books []Book
	for _, masterRel := range b.cfg.Masters {
		masterPath := filepath.Join(b.cfg.PagesPath(), filepath.FromSlash(masterRel))
		if _, err := os.Stat(masterPath); err != nil {
			slog.Warn("Master file not found", logfields.Master(masterRel), logfields.Path(masterPath))
			b.issues = append(b.issues, Issue{Kind: IssueMissingMaster, Path: masterPath})
			continue
		}

		slog.Info("Processing master", logfields.Master(masterRel))
		book := Book{Master: masterRel}

		// Book entry: document title, anchor only when explicitly marked.
		title, anchor := b.scanner.DocTitle(masterPath)
		book.Entries = append(book.Entries, NewEntry(1, b.cfg.Nav.MaxDepth, filepath.ToSlash(masterRel), anchor, title))

		for _, inc := range b.scanner.Includes(masterPath) {
			key := visitKey{path: inc, master: masterRel}
			if b.visited.Has(key) {
				continue
			}
			b.visited.Add(key)
			b.processPage(inc, masterRel, 2, &book)
		}

		books = append(books, book)
	}
	return books
}

// processPage appends the page's own entry and its bounded substructure to
// the book, then recurses into aggregator includes.
func (b *Builder) processPage(path, masterKey string, depth int, book *Book) {
	rel, err := filepath.Rel(b.cfg.PagesPath(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		slog.Warn("File outside pages directory", logfields.Path(path))
		b.issues = append(b.issues, Issue{Kind: IssueOutsidePages, Path: path})
		return
	}
	contentRel := filepath.ToSlash(rel)

	// Shared content presented under this book links to a generated alias
	// page instead of the shared physical file.
	finalRel, aliasApplied := b.aliases.Resolve(masterKey, contentRel)
	if aliasApplied && !b.dryRun {
		if err := b.aliases.WriteStub(finalRel, contentRel); err != nil {
			slog.Warn("Could not write alias stub", logfields.Alias(finalRel), logfields.Error(err))
			b.issues = append(b.issues, Issue{Kind: IssueStubWrite, Path: finalRel, Detail: err.Error()})
		} else {
			slog.Debug("Generated alias stub", logfields.Alias(finalRel), logfields.Target(contentRel))
		}
	}

	title, anchor := b.scanner.PageTitle(path)
	if asciidoc.IsUntitled(title) {
		b.skipUntitled(path)
		return
	}

	book.Entries = append(book.Entries, NewEntry(depth, b.cfg.Nav.MaxDepth, finalRel, anchor, title))

	includes := b.scanner.Includes(path)
	aggregator := len(includes) > 0 && !b.scanner.HasSectionHeadings(path)

	if aggregator && aliasApplied {
		// Children of an aliased aggregator are listed as sections of the
		// alias page; recursing into the shared files would duplicate the
		// whole subtree under its physical path.
		for _, inc := range includes {
			childTitle, childAnchor := b.scanner.PageTitle(inc)
			if asciidoc.IsUntitled(childTitle) {
				continue
			}
			book.Entries = append(book.Entries, NewEntry(depth+1, b.cfg.Nav.MaxDepth, finalRel, childAnchor, childTitle))
		}
		return
	}

	// In-page sections, excluding duplicates of the page's own heading.
	// Entries that would exceed the depth limit are dropped rather than
	// flattened onto it.
	for _, sec := range b.scanner.Sections(path) {
		if sec.Anchor == anchor || strings.EqualFold(strings.TrimSpace(sec.Title), strings.TrimSpace(title)) {
			continue
		}
		secDepth := depth + (sec.Level - 2)
		if secDepth > b.cfg.Nav.MaxDepth {
			continue
		}
		book.Entries = append(book.Entries, NewEntry(secDepth, b.cfg.Nav.MaxDepth, finalRel, sec.Anchor, sec.Title))
	}

	if aggregator {
		for _, inc := range includes {
			key := visitKey{path: inc, master: masterKey}
			if b.visited.Has(key) {
				continue
			}
			b.visited.Add(key)
			b.processPage(inc, masterKey, depth+1, book)
		}
	}
}

// skipUntitled logs the head of a page that produced no usable title, to aid
// figuring out why it was skipped.
func (b *Builder) skipUntitled(path string) {
	slog.Warn("Skipping page without a qualifying heading", logfields.Path(path))
	b.issues = append(b.issues, Issue{Kind: IssueUntitledPage, Path: path})
	for i, line := range asciidoc.Head(path, headDumpLines) {
		slog.Info("Page head", slog.Int("line", i+1), slog.String("text", line))
	}
}
