package main

import "github.com/urfave/cli/v3"

func kindIDArguments() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{Name: "kind"},
		&cli.StringArg{Name: "id"},
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func kindFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Usage:   usage,
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Start an admin session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Admin username (defaults to admin.username)",
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "End the admin session",
		Action: r.Logout,
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the admin session state",
		Action: r.Whoami,
	}
}

func featuredCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "featured",
		Aliases: []string{"f"},
		Usage:   "Manage the curated set",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Fetch a title from the catalog and feature it",
				Arguments: kindIDArguments(),
				Action:    r.FeaturedAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a featured title",
				Arguments: kindIDArguments(),
				Action:    r.FeaturedRemove,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List featured titles",
				Flags: append([]cli.Flag{
					kindFlag("Only list one kind (film or series)"),
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Fuzzy filter by title",
					},
				}, jsonFlags()...),
				Action: r.FeaturedList,
			},
		},
	}
}

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show the dashboard counters",
		Flags:  jsonFlags(),
		Action: r.Stats,
	}
}

func viewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Show the details of a title and count a view",
		Arguments: kindIDArguments(),
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Play the trailer",
			},
		}, jsonFlags()...),
		Action: r.View,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: append([]cli.Flag{
			kindFlag("Search one kind only (film or series)"),
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page",
				Value: 1,
			},
		}, jsonFlags()...),
		Action: r.Search,
	}
}

func discoverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Browse the catalog by genre and origin country",
		Flags: append([]cli.Flag{
			kindFlag("film or series"),
			&cli.StringFlag{
				Name:  "genre",
				Usage: "Comma separated genre IDs (see reel genres)",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "ISO 3166-1 origin country code",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order",
				Value: "popularity.desc",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page",
				Value: 1,
			},
		}, jsonFlags()...),
		Action: r.Discover,
	}
}

func trendingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "trending",
		Usage: "List trending titles",
		Flags: append([]cli.Flag{
			kindFlag("film or series"),
			&cli.StringFlag{
				Name:  "window",
				Usage: "day or week",
				Value: "week",
			},
		}, jsonFlags()...),
		Action: r.Trending,
	}
}

func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "genres",
		Usage:  "List catalog genres",
		Flags:  append([]cli.Flag{kindFlag("film or series")}, jsonFlags()...),
		Action: r.Genres,
	}
}

func hashPasswordCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "hash-password",
		Usage:  "Print a bcrypt hash for admin.password_hash",
		Action: r.HashPassword,
	}
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination (defaults to ~/.config/reel/config.yaml)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}
