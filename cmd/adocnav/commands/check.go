package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/adocnav/internal/config"
	"git.home.luguber.info/inful/adocnav/internal/logfields"
	"git.home.luguber.info/inful/adocnav/internal/nav"
)

// CheckCmd implements the 'check' command: the generate traversal with all
// writes disabled, failing the process when any degradation was found.
type CheckCmd struct{}

func (ch *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	builder := nav.NewBuilder(cfg, true)
	books := builder.Build()
	issues := builder.Issues()

	slog.Info("Check completed",
		slog.Int("books", len(books)),
		logfields.Entries(nav.CountEntries(books)),
		slog.Int("issues", len(issues)))

	for _, issue := range issues {
		slog.Error("Problem found",
			slog.String("kind", string(issue.Kind)),
			logfields.Path(issue.Path),
			slog.String("detail", issue.Detail))
	}

	if len(issues) > 0 {
		return fmt.Errorf("check found %d problem(s)", len(issues))
	}
	return nil
}
