package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source/tmdb"
	"github.com/mmcdole/reel/internal/tui"
)

// TUI launches the interactive browser
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	// Console output would draw over the alt screen
	if r.config.Logging.File == "" || r.config.Logging.File == "-" {
		r.SetLogger(adapter.NullLogger())
	}

	cfg := r.config
	model := tui.NewModel(r.catalog, r.curation, r.session, tui.Options{
		AdminUsername: cfg.Admin.Username,
		ImageURL: func(path string) string {
			return tmdb.ImageURL(cfg.TMDB.ImageBaseURL, path, cfg.UI.ImageSize)
		},
		OpenURL: r.launcher.Launch,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
