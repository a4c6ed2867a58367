// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format (txt, json, csv, md)",
		Value:   value,
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path; the format follows the extension unless --format is set",
	}
}

func songFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Aliases:  []string{"t"},
			Usage:    "Song title",
			Required: required,
		},
		&cli.StringFlag{
			Name:    "artist",
			Aliases: []string{"a"},
			Usage:   "Song artist; required when the title is ambiguous",
		},
	}
}

// runFlags are shared by the visualization commands.
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "delay",
			Usage: "Milliseconds between steps (defaults to visualizer.step_delay_ms)",
		},
		&cli.BoolFlag{
			Name:  "steps",
			Usage: "Print every step as it happens",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output the result as JSON",
		},
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "seed",
						Usage: "Load the default songs into an empty library",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// libraryCommand handles song library operations
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib", "songs"},
		Usage:   "Song library operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List songs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mood",
						Aliases: []string{"m"},
						Usage:   "Mood filter (All, Happy, Energetic, Sad, Calm, Melancholic)",
						Value:   "All",
					},
					formatFlag("txt"),
				},
				Action: r.LibraryList,
			},
			{
				Name:  "add",
				Usage: "Add a song",
				Flags: append(songFlags(true),
					&cli.StringFlag{
						Name:  "mood",
						Usage: "Mood",
						Value: "Happy",
					},
					&cli.IntFlag{
						Name:  "energy",
						Usage: "Energy 0-100",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "valence",
						Usage: "Valence 0-100",
						Value: 50,
					},
					&cli.StringFlag{
						Name:  "duration",
						Usage: "Duration as m:ss or seconds",
						Value: "3:00",
					},
				),
				Action: r.LibraryAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a song",
				Flags:   songFlags(true),
				Action:  r.LibraryRemove,
			},
			{
				Name:  "import",
				Usage: "Import songs from a JSON file (an array of songs or a playlist)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.LibraryImport,
			},
			{
				Name:   "export",
				Usage:  "Export the library",
				Flags:  []cli.Flag{formatFlag(""), outputFlag()},
				Action: r.LibraryExport,
			},
		},
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	nameArg := []cli.Argument{&cli.StringArg{Name: "name"}}

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:      "create",
				Usage:     "Create an empty playlist",
				Arguments: nameArg,
				Action:    r.PlaylistCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist",
				Arguments: nameArg,
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "show",
				Usage:     "Show the songs of a playlist",
				Arguments: nameArg,
				Flags:     []cli.Flag{formatFlag("txt")},
				Action:    r.PlaylistShow,
			},
			{
				Name:      "add",
				Usage:     "Add a library song to a playlist",
				Arguments: nameArg,
				Flags:     songFlags(true),
				Action:    r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a song from a playlist",
				Arguments: nameArg,
				Flags:     songFlags(true),
				Action:    r.PlaylistRemove,
			},
			{
				Name:      "export",
				Usage:     "Export a playlist",
				Arguments: nameArg,
				Flags:     []cli.Flag{formatFlag(""), outputFlag()},
				Action:    r.PlaylistExport,
			},
			{
				Name:  "import",
				Usage: "Import playlists from a playlists JSON file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.PlaylistImport,
			},
		},
	}
}

// sortCommand runs a sort visualization
func sortCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sort",
		Usage: "Sort the library step by step",
		Flags: append(runFlags(),
			&cli.StringFlag{
				Name:  "algorithm",
				Usage: "bubble, selection or insertion (defaults to visualizer.default_algorithm)",
			},
			&cli.StringFlag{
				Name:  "criterion",
				Usage: "title, artist, mood, energy, valence or duration (defaults to visualizer.default_criterion)",
			},
			&cli.StringFlag{
				Name:    "mood",
				Aliases: []string{"m"},
				Usage:   "Sort only the songs with this mood",
				Value:   "All",
			},
		),
		Action: r.Sort,
	}
}

// recommendCommand runs a breadth-first recommendation
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Recommend songs similar to a title",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "title"},
		},
		Flags: append(runFlags(),
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of recommendations (defaults to visualizer.recommend_count)",
			},
		),
		Action: r.Recommend,
	}
}

// pathCommand runs a depth-first path search
func pathCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Find a chain of similar songs between two titles",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "from"},
			&cli.StringArg{Name: "to"},
		},
		Flags:  runFlags(),
		Action: r.Path,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive music browser",
		Action:  r.TUI,
	}
}

// serveCommand starts the HTTP surface
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the library and a live event stream over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (defaults to server.port)",
			},
			&cli.IntFlag{
				Name:  "delay",
				Usage: "Milliseconds between steps (defaults to visualizer.step_delay_ms)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the song listing in the default browser",
			},
		},
		Action: r.Serve,
	}
}
