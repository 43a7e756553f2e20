package nav

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/adocnav/internal/config"
)

// newTestConfig returns a config rooted in a fresh temp dir with default
// navigation tuning.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		SourceDir:   t.TempDir(),
		PagesDir:    "pages",
		PartialsDir: "partials",
		Output:      "nav.adoc",
		Nav: config.NavConfig{
			MaxDepth:      4,
			SectionLevels: []int{3},
			IgnoreTitles:  config.DefaultIgnoreTitles,
		},
	}
}

func writePage(t *testing.T, cfg *config.Config, rel, content string) {
	t.Helper()
	path := filepath.Join(cfg.PagesPath(), filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func formatted(books []Book) []string {
	var lines []string
	for _, b := range books {
		for _, e := range b.Entries {
			lines = append(lines, e.Format())
		}
	}
	return lines
}

func TestBuild_SimpleBook_PagesAndSections(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"usersguide/usersguide.adoc"}

	writePage(t, cfg, "usersguide/usersguide.adoc", `= Users Guide
include::../chapters/intro.adoc[]
include::../chapters/setup.adoc[]
`)
	writePage(t, cfg, "chapters/intro.adoc", `[[intro]]
== Introduction
some text
=== Configuration
more text
`)
	writePage(t, cfg, "chapters/setup.adoc", "== Setup\n")

	b := NewBuilder(cfg, false)
	books := b.Build()
	require.Len(t, books, 1)
	require.Empty(t, b.Issues())

	require.Equal(t, []string{
		"* xref:usersguide/usersguide.adoc[Users Guide]",
		"** xref:chapters/intro.adoc#intro[Introduction]",
		"*** xref:chapters/intro.adoc#configuration[Configuration]",
		"** xref:chapters/setup.adoc#setup[Setup]",
	}, formatted(books))
}

func TestBuild_MissingMaster_SkippedOthersProcessed(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"gone/gone.adoc", "guide/guide.adoc"}
	writePage(t, cfg, "guide/guide.adoc", "= Guide\n")

	b := NewBuilder(cfg, false)
	books := b.Build()

	require.Len(t, books, 1)
	require.Equal(t, "guide/guide.adoc", books[0].Master)
	require.Len(t, b.Issues(), 1)
	require.Equal(t, IssueMissingMaster, b.Issues()[0].Kind)
}

func TestBuild_UntitledPage_NoEntryNoRecursion(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}
	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../broken.adoc[]\n")
	writePage(t, cfg, "broken.adoc", "prose only, no heading\ninclude::guide/guide.adoc[]\n")

	b := NewBuilder(cfg, false)
	books := b.Build()

	require.Equal(t, []string{"* xref:guide/guide.adoc[Guide]"}, formatted(books))

	var kinds []IssueKind
	for _, i := range b.Issues() {
		kinds = append(kinds, i.Kind)
	}
	require.Contains(t, kinds, IssueUntitledPage)
}

func TestBuild_MissingInclude_EdgeDroppedWithIssue(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}
	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../nowhere.adoc[]\n")

	b := NewBuilder(cfg, false)
	books := b.Build()

	require.Equal(t, []string{"* xref:guide/guide.adoc[Guide]"}, formatted(books))
	require.Len(t, b.Issues(), 1)
	require.Equal(t, IssueMissingInclude, b.Issues()[0].Kind)
}

func TestBuild_AliasedAggregator_ChildrenTargetAliasOnly(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"referenceguide/referenceguide.adoc"}
	cfg.Aliases = map[string]map[string]string{
		"referenceguide.adoc": {
			"shared/book.adoc": "referenceguide/taudb-alias.adoc",
		},
	}

	writePage(t, cfg, "referenceguide/referenceguide.adoc", `= Reference Guide
include::../shared/book.adoc[]
`)
	writePage(t, cfg, "shared/book.adoc", `== TAUdb
include::chapter1.adoc[]
include::chapter2.adoc[]
`)
	writePage(t, cfg, "shared/chapter1.adoc", "[[ch1]]\n== Chapter One\n")
	writePage(t, cfg, "shared/chapter2.adoc", "== Chapter Two\n=== Inner Detail\n")

	b := NewBuilder(cfg, false)
	books := b.Build()

	require.Equal(t, []string{
		"* xref:referenceguide/referenceguide.adoc[Reference Guide]",
		"** xref:referenceguide/taudb-alias.adoc#taudb[TAUdb]",
		"*** xref:referenceguide/taudb-alias.adoc#ch1[Chapter One]",
		"*** xref:referenceguide/taudb-alias.adoc#chapter-two[Chapter Two]",
	}, formatted(books))

	// No entry may point at the shared physical files.
	for _, line := range formatted(books) {
		require.NotContains(t, line, "xref:shared/")
	}

	// Stub generated: page-alias line plus one relative include.
	data, err := os.ReadFile(filepath.Join(cfg.PagesPath(), "referenceguide", "taudb-alias.adoc"))
	require.NoError(t, err)
	require.Equal(t, ":page-alias: shared/book.adoc\ninclude::../shared/book.adoc[]\n", string(data))
}

func TestBuild_AliasedLeafChapter_EntryTargetsAliasStub(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"book2/book2.adoc"}
	cfg.Aliases = map[string]map[string]string{
		"book2/book2.adoc": {
			"chapters/shared.adoc": "book2/shared-alias.adoc",
		},
	}

	writePage(t, cfg, "book2/book2.adoc", "= Book Two\ninclude::../chapters/shared.adoc[]\n")
	writePage(t, cfg, "chapters/shared.adoc", "== Shared Chapter\n")

	books := NewBuilder(cfg, false).Build()
	require.Equal(t, []string{
		"* xref:book2/book2.adoc[Book Two]",
		"** xref:book2/shared-alias.adoc#shared-chapter[Shared Chapter]",
	}, formatted(books))

	data, err := os.ReadFile(filepath.Join(cfg.PagesPath(), "book2", "shared-alias.adoc"))
	require.NoError(t, err)
	require.Equal(t, ":page-alias: chapters/shared.adoc\ninclude::../chapters/shared.adoc[]\n", string(data))
}

func TestBuild_DryRun_WritesNoStubs(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"book2/book2.adoc"}
	cfg.Aliases = map[string]map[string]string{
		"book2.adoc": {"chapters/shared.adoc": "book2/shared-alias.adoc"},
	}
	writePage(t, cfg, "book2/book2.adoc", "= Book Two\ninclude::../chapters/shared.adoc[]\n")
	writePage(t, cfg, "chapters/shared.adoc", "== Shared Chapter\n")

	books := NewBuilder(cfg, true).Build()

	// Entries still target the alias so dry-run output matches a real run.
	require.Contains(t, formatted(books)[1], "book2/shared-alias.adoc")
	_, err := os.Stat(filepath.Join(cfg.PagesPath(), "book2", "shared-alias.adoc"))
	require.True(t, os.IsNotExist(err))
}

func TestBuild_DiamondIncludes_PageEmittedOncePerMaster(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	writePage(t, cfg, "guide/guide.adoc", `= Guide
include::../parts/a.adoc[]
include::../parts/b.adoc[]
`)
	writePage(t, cfg, "parts/a.adoc", "== Part A\ninclude::../leaf.adoc[]\n")
	writePage(t, cfg, "parts/b.adoc", "== Part B\ninclude::../leaf.adoc[]\n")
	writePage(t, cfg, "leaf.adoc", "== Leaf\n")

	books := NewBuilder(cfg, false).Build()

	leafCount := 0
	for _, line := range formatted(books) {
		if strings.Contains(line, "xref:leaf.adoc") {
			leafCount++
		}
	}
	require.Equal(t, 1, leafCount)
}

func TestBuild_CyclicIncludes_Terminates(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../a.adoc[]\n")
	writePage(t, cfg, "a.adoc", "== A\ninclude::b.adoc[]\n")
	writePage(t, cfg, "b.adoc", "== B\ninclude::a.adoc[]\n")

	books := NewBuilder(cfg, false).Build()
	require.Equal(t, []string{
		"* xref:guide/guide.adoc[Guide]",
		"** xref:a.adoc#a[A]",
		"*** xref:b.adoc#b[B]",
	}, formatted(books))
}

func TestBuild_SharedPageUnderTwoMasters_EmittedUnderBoth(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"one/one.adoc", "two/two.adoc"}

	writePage(t, cfg, "one/one.adoc", "= One\ninclude::../shared.adoc[]\n")
	writePage(t, cfg, "two/two.adoc", "= Two\ninclude::../shared.adoc[]\n")
	writePage(t, cfg, "shared.adoc", "== Shared\n")

	books := NewBuilder(cfg, false).Build()
	require.Len(t, books, 2)
	require.Contains(t, formatted(books)[1], "xref:shared.adoc")
	require.Contains(t, formatted(books)[3], "xref:shared.adoc")
}

func TestBuild_SectionDuplicatingPageTitle_Suppressed(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../overview.adoc[]\n")
	writePage(t, cfg, "overview.adoc", `== Overview
text
=== OVERVIEW
=== Details
`)

	books := NewBuilder(cfg, false).Build()
	require.Equal(t, []string{
		"* xref:guide/guide.adoc[Guide]",
		"** xref:overview.adoc#overview[Overview]",
		"*** xref:overview.adoc#details[Details]",
	}, formatted(books))
}

func TestBuild_SectionDuplicatingPageAnchor_Suppressed(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../page.adoc[]\n")
	writePage(t, cfg, "page.adoc", `[[pg]]
== The Page
text
[[pg]]
=== Differently Titled
`)

	books := NewBuilder(cfg, false).Build()
	for _, line := range formatted(books) {
		require.NotContains(t, line, "Differently Titled")
	}
}

func TestBuild_BoilerplateSection_NeverEmitted(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../cmd.adoc[]\n")
	writePage(t, cfg, "cmd.adoc", `== Some Command
=== Options
=== See Also
=== Usage Patterns
`)

	books := NewBuilder(cfg, false).Build()
	lines := formatted(books)
	require.Contains(t, lines[2], "Usage Patterns")
	for _, line := range lines {
		require.NotContains(t, line, "Options")
		require.NotContains(t, line, "See Also")
	}
}

func TestBuild_OverDepthSections_DroppedNotClamped(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	// master(1) -> agg(2) -> agg(3) -> page(4); page sections would land at 5.
	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../l2.adoc[]\n")
	writePage(t, cfg, "l2.adoc", "== Level Two\ninclude::l3.adoc[]\n")
	writePage(t, cfg, "l3.adoc", "== Level Three\ninclude::deep.adoc[]\n")
	writePage(t, cfg, "deep.adoc", "== Deep Page\n=== Too Deep Section\n")

	books := NewBuilder(cfg, false).Build()
	lines := formatted(books)
	require.Contains(t, lines[3], "Deep Page")
	require.True(t, strings.HasPrefix(lines[3], "**** "))
	for _, line := range lines {
		require.NotContains(t, line, "Too Deep Section")
	}
}

func TestBuild_PageWithOwnSections_IncludesNotRecursed(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../mixed.adoc[]\n")
	writePage(t, cfg, "mixed.adoc", `== Mixed Page
=== A Real Section
include::child.adoc[]
`)
	writePage(t, cfg, "child.adoc", "== Child\n")

	books := NewBuilder(cfg, false).Build()
	for _, line := range formatted(books) {
		require.NotContains(t, line, "xref:child.adoc")
	}
}

func TestBuild_Entries_DepthAlwaysWithinBounds(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Masters = []string{"guide/guide.adoc"}

	writePage(t, cfg, "guide/guide.adoc", "= Guide\ninclude::../a.adoc[]\n")
	writePage(t, cfg, "a.adoc", "== A\ninclude::b.adoc[]\n")
	writePage(t, cfg, "b.adoc", "== B\ninclude::c.adoc[]\n")
	writePage(t, cfg, "c.adoc", "== C\ninclude::d.adoc[]\n")
	writePage(t, cfg, "d.adoc", "== D\ninclude::e.adoc[]\n")
	writePage(t, cfg, "e.adoc", "== E\n")

	books := NewBuilder(cfg, false).Build()
	for _, book := range books {
		for _, e := range book.Entries {
			require.GreaterOrEqual(t, e.Depth, 1)
			require.LessOrEqual(t, e.Depth, cfg.Nav.MaxDepth)
		}
	}
}
