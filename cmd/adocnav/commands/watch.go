package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/adocnav/internal/config"
	"git.home.luguber.info/inful/adocnav/internal/logfields"
	"git.home.luguber.info/inful/adocnav/internal/nav"
	"git.home.luguber.info/inful/adocnav/internal/watch"
)

// WatchCmd implements the 'watch' command: generate once, then keep the nav
// file current as the source tree changes, until interrupted.
type WatchCmd struct{}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	if err := RunGenerate(cfg, false); err != nil {
		return err
	}

	rebuild := func(_ context.Context) error {
		runID := uuid.NewString()
		slog.Info("Source changed, regenerating", logfields.RunID(runID))
		if err := RunGenerate(cfg, false); err != nil {
			return err
		}
		slog.Info("Regeneration complete", logfields.RunID(runID))
		return nil
	}

	// The generator's own outputs live inside the watched tree; their
	// events must not retrigger builds.
	ignore := append((&nav.AliasResolver{Rules: nav.AliasTable(cfg.Aliases), PagesDir: cfg.PagesPath()}).StubPaths(), cfg.OutputPath())

	watcher, err := watch.New(cfg.PagesPath(), ignore, rebuild)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("Watch mode started, press Ctrl+C to stop")
	return watcher.Run(ctx)
}
