package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration: where the AsciiDoc module lives,
// which master files define books, and how navigation entries are derived.
type Config struct {
	SourceDir   string                       `yaml:"source_dir"`   // module root, e.g. src/modules/ROOT
	PagesDir    string                       `yaml:"pages_dir"`    // relative to source_dir
	PartialsDir string                       `yaml:"partials_dir"` // relative to source_dir, excluded from includes
	Output      string                       `yaml:"output"`       // nav file, relative to source_dir
	Masters     []string                     `yaml:"masters"`      // book files, relative to pages dir, in output order
	Nav         NavConfig                    `yaml:"nav"`
	Aliases     map[string]map[string]string `yaml:"aliases,omitempty"` // master key -> shared content -> alias page
}

// NavConfig tunes navigation derivation.
type NavConfig struct {
	MaxDepth      int      `yaml:"max_depth,omitempty"`      // maximum entry nesting
	SectionLevels []int    `yaml:"section_levels,omitempty"` // heading depths surfaced as sub-navigation
	IgnoreTitles  []string `yaml:"ignore_titles,omitempty"`  // boilerplate section titles, matched case-insensitively
}

// DefaultIgnoreTitles are generic section names that never become navigation.
var DefaultIgnoreTitles = []string{"description", "options", "example", "examples", "notes", "see also"}

// Load loads configuration from the specified file: env files first, then
// environment expansion over the raw YAML, then unmarshal, defaults and
// validation.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = filepath.Join("src", "modules", "ROOT")
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
	if c.PartialsDir == "" {
		c.PartialsDir = "partials"
	}
	if c.Output == "" {
		c.Output = "nav.adoc"
	}
	if c.Nav.MaxDepth == 0 {
		c.Nav.MaxDepth = 4
	}
	if len(c.Nav.SectionLevels) == 0 {
		c.Nav.SectionLevels = []int{3}
	}
	if len(c.Nav.IgnoreTitles) == 0 {
		c.Nav.IgnoreTitles = append([]string(nil), DefaultIgnoreTitles...)
	}
}

// Validate rejects configurations the traversal cannot work with.
func (c *Config) Validate() error {
	if len(c.Masters) == 0 {
		return fmt.Errorf("configuration lists no master files")
	}
	if c.Nav.MaxDepth < 1 {
		return fmt.Errorf("nav.max_depth must be at least 1, got %d", c.Nav.MaxDepth)
	}
	for _, lvl := range c.Nav.SectionLevels {
		if lvl < 2 {
			return fmt.Errorf("nav.section_levels entries must be 2 or deeper, got %d", lvl)
		}
	}
	for master, rules := range c.Aliases {
		for content, alias := range rules {
			for name, p := range map[string]string{"content": content, "alias": alias} {
				if filepath.IsAbs(p) || escapesDir(p) {
					return fmt.Errorf("alias rule for master %q: %s path %q must stay inside the pages directory", master, name, p)
				}
			}
		}
	}
	return nil
}

// escapesDir reports whether a relative path climbs out of its base directory.
func escapesDir(p string) bool {
	clean := filepath.Clean(filepath.FromSlash(p))
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

// PagesPath returns the absolute-ish pages directory (source_dir joined).
func (c *Config) PagesPath() string { return filepath.Join(c.SourceDir, c.PagesDir) }

// PartialsPath returns the excluded partials directory.
func (c *Config) PartialsPath() string { return filepath.Join(c.SourceDir, c.PartialsDir) }

// OutputPath returns the destination navigation file.
func (c *Config) OutputPath() string { return filepath.Join(c.SourceDir, c.Output) }

const exampleConfig = `# adocnav configuration
source_dir: src/modules/ROOT
pages_dir: pages
partials_dir: partials
output: nav.adoc

# Master (book) files relative to the pages directory, in output order.
masters:
  - usersguide/usersguide.adoc
  - installguide/installguide.adoc
  - referenceguide/referenceguide.adoc

nav:
  max_depth: 4
  section_levels: [3]
  ignore_titles: [description, options, example, examples, notes, see also]

# Shared content aliasing: when the named master includes the shared page,
# navigation links to a generated alias stub instead. Keys may be the
# master's full relative path or its bare filename; the full path wins.
aliases:
  referenceguide/referenceguide.adoc:
    perfdmf/book.adoc: referenceguide/taudb-alias.adoc
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
