package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/reel/internal/adapter"
)

const masked = "********"

// ConfigInit writes the default configuration file
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		path = adapter.DefaultConfigFile()
	}

	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	if err := adapter.SaveConfig(adapter.DefaultConfig(), path); err != nil {
		return err
	}
	return r.writePlain("✓ Wrote %s\nSet tmdb.api_key and admin.password_hash (see `reel hash-password`) to finish setup.\n", path)
}

// ConfigShow prints the effective configuration with secrets masked
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	cfg := *r.config
	mask(&cfg.TMDB.APIKey)
	mask(&cfg.TMDB.AccessToken)
	mask(&cfg.Store.Redis.Password)
	mask(&cfg.Admin.PasswordHash)
	return r.writeJSON(cfg, true)
}

func mask(s *string) {
	if *s != "" {
		*s = masked
	}
}
