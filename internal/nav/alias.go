package nav

import (
	"fmt"
	"os"
	"path/filepath"
)

// AliasTable maps a master identifier (full pages-relative path or bare
// filename) to shared-content -> alias-page rules. All paths are
// pages-relative with forward slashes.
type AliasTable map[string]map[string]string

// AliasResolver decides whether a shared content page must be presented
// under a book-specific alias, and generates the alias stub files.
type AliasResolver struct {
	Rules    AliasTable
	PagesDir string
}

// Resolve returns the final link target for contentRel under the given
// master, and whether an alias rule applied. Rules keyed by the master's
// full relative path take priority over rules keyed by its bare filename.
func (r *AliasResolver) Resolve(masterKey, contentRel string) (finalRel string, applied bool) {
	for _, key := range []string{masterKey, filepath.Base(masterKey)} {
		if rules, ok := r.Rules[key]; ok {
			if alias, ok := rules[contentRel]; ok {
				return alias, true
			}
		}
	}
	return contentRel, false
}

// WriteStub generates the alias page: a page-alias metadata line naming the
// shared content, followed by one include of the relative path to it. The
// stub is overwritten unconditionally so repeated runs are byte-identical.
func (r *AliasResolver) WriteStub(aliasRel, contentRel string) error {
	aliasAbs := filepath.Join(r.PagesDir, filepath.FromSlash(aliasRel))
	contentAbs := filepath.Join(r.PagesDir, filepath.FromSlash(contentRel))

	if err := os.MkdirAll(filepath.Dir(aliasAbs), 0o755); err != nil {
		return fmt.Errorf("failed to create alias directory: %w", err)
	}

	includeRel, err := filepath.Rel(filepath.Dir(aliasAbs), contentAbs)
	if err != nil {
		return fmt.Errorf("failed to compute include path for alias %s: %w", aliasRel, err)
	}

	content := fmt.Sprintf(":page-alias: %s\ninclude::%s[]\n", contentRel, filepath.ToSlash(includeRel))
	if err := os.WriteFile(aliasAbs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write alias stub: %w", err)
	}
	return nil
}

// StubPaths returns the absolute paths of every alias page the table can
// generate. Watch mode uses this to keep generated files from retriggering
// rebuilds.
func (r *AliasResolver) StubPaths() []string {
	seen := map[string]struct{}{}
	var paths []string
	for _, rules := range r.Rules {
		for _, alias := range rules {
			abs := filepath.Join(r.PagesDir, filepath.FromSlash(alias))
			if _, ok := seen[abs]; ok {
				continue
			}
			seen[abs] = struct{}{}
			paths = append(paths, abs)
		}
	}
	return paths
}
