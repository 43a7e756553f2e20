package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/adocnav/internal/config"
	"git.home.luguber.info/inful/adocnav/internal/logfields"
	"git.home.luguber.info/inful/adocnav/internal/nav"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output string `short:"o" help:"Override the destination navigation file from the config"`
	DryRun bool   `name:"dry-run" help:"Print the navigation to stdout instead of writing files"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if g.Output != "" {
		cfg.Output = g.Output
	}
	return RunGenerate(cfg, g.DryRun)
}

// RunGenerate performs one full traversal and, unless dryRun, writes the nav
// file and any alias stubs. Shared by generate and watch.
func RunGenerate(cfg *config.Config, dryRun bool) error {
	start := time.Now()

	builder := nav.NewBuilder(cfg, dryRun)
	books := builder.Build()

	if dryRun {
		fmt.Fprint(os.Stdout, nav.Render(books))
	} else {
		if err := nav.WriteNav(cfg.OutputPath(), books); err != nil {
			return err
		}
	}

	slog.Info("Navigation generated",
		logfields.Path(cfg.OutputPath()),
		logfields.Entries(nav.CountEntries(books)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))

	if issues := builder.Issues(); len(issues) > 0 {
		slog.Warn("Traversal finished with degradations", slog.Int("issues", len(issues)))
	}
	return nil
}
