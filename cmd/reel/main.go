package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	runner := &Runner{output: os.Stdout, readPassword: promptPassword}

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "reel",
		Usage:   "Browse the film and series catalog and curate featured titles",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Sources: cli.EnvVars("REEL_CONFIG"),
			},
		},
		Before:   r.Setup,
		After:    r.Close,
		Action:   r.TUI,
		Commands: r.register(),
	}
}
