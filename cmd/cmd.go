// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func tokenFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "token",
		Aliases: []string{"t"},
		Usage:   "Bearer token for gated routes",
		Sources: cli.EnvVars("MMA_TOKEN"),
	}
}

func movieFieldFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Usage:    "Movie title (1-15 characters)",
			Required: required,
		},
		&cli.IntFlag{
			Name:     "year",
			Usage:    "Release year",
			Required: required,
		},
		&cli.FloatFlag{
			Name:     "rating",
			Usage:    "Rating",
			Required: required,
		},
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the movie catalog API",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "seed",
				Usage: "Load the default catalog when the movies table is empty",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the config file if missing and bootstrap the database schema",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "seed",
						Usage: "Load the default catalog when the movies table is empty",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// moviesCommand operates on the local catalog database.
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Manage the local movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List movies",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:    "year",
						Aliases: []string{"y"},
						Usage:   "Only movies released in this year",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (table, json, csv, markdown, txt)",
						Value:   "table",
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:      "get",
				Usage:     "Show a single movie",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesGet,
			},
			{
				Name:   "add",
				Usage:  "Add a movie",
				Flags:  append([]cli.Flag{configFlag()}, movieFieldFlags(true)...),
				Action: r.MoviesAdd,
			},
			{
				Name:      "update",
				Usage:     "Replace the title, year and rating of a movie",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     append([]cli.Flag{configFlag()}, movieFieldFlags(true)...),
				Action:    r.MoviesUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a movie",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{configFlag()},
				Action:    r.MoviesDelete,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to a file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: movies_export.<ext>)",
					},
					&cli.IntFlag{
						Name:    "year",
						Aliases: []string{"y"},
						Usage:   "Only movies released in this year",
					},
				},
				Action: r.MoviesExport,
			},
			{
				Name:      "import",
				Usage:     "Import movies from a JSON or CSV file",
				Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
				Flags:     []cli.Flag{configFlag()},
				Action:    r.MoviesImport,
			},
		},
	}
}

// tokenCommand issues bearer tokens with the configured secret.
func tokenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Bearer token utilities",
		Commands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "Print a token signed with the configured secret",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Email claim (default: the configured admin)",
					},
				},
				Action: r.TokenIssue,
			},
		},
	}
}

// remoteCommand calls a running API through the HTTP client.
func remoteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "remote",
		Usage: "Call a running movie catalog API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "API base URL (overrides client.base_url)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Exchange credentials for a token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
						Sources:  cli.EnvVars("MMA_PASSWORD"),
					},
				},
				Action: r.RemoteLogin,
			},
			{
				Name:  "movies",
				Usage: "List movies (the full listing requires a token)",
				Flags: []cli.Flag{
					tokenFlag(),
					&cli.IntFlag{
						Name:    "year",
						Aliases: []string{"y"},
						Usage:   "Only movies released in this year",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RemoteMovies,
			},
			{
				Name:      "get",
				Usage:     "Show a single movie",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.RemoteGet,
			},
			{
				Name:      "push",
				Usage:     "Create every movie of a JSON or CSV file on the server",
				Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent requests (1-10)",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: 5,
					},
				},
				Action: r.RemotePush,
			},
		},
	}
}

// tuiCommand launches the interactive catalog browser.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the catalog interactively",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
