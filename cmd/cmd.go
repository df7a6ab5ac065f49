// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// parseCommand splits a credit string into its entries
func parseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Split a credit string into entity, credited-as and join phrase",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (csv, md, txt)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the export to a file instead of stdout",
			},
		},
		Action: r.Parse,
	}
}

// extractCommand guesses performers from track titles
func extractCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Guess the performer of each title from remix/version markers",
		ArgsUsage: "[titles...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Read titles from a file, one per line",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Extract,
	}
}

func urlFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "url",
		Aliases:  []string{"u"},
		Usage:    "Editor page URL",
		Required: true,
	}
}

// fillCommand writes a parsed credit string into a live editor page
func fillCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fill",
		Usage: "Parse a credit string and fill the editor page's credit inputs",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Flags:  []cli.Flag{urlFlag()},
		Action: r.Fill,
	}
}

// voiceCommand appends the voice actor of the last credited character
func voiceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "voice",
		Aliases: []string{"cv"},
		Usage:   "Append the voice actor of the last credited character on the editor page",
		Flags:   []cli.Flag{urlFlag()},
		Action:  r.Voice,
	}
}

// tokensCommand manages the persisted voice-credit tokens
func tokensCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tokens",
		Usage: "Show or change the voice-credit tokens",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective tokens",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TokensShow,
			},
			{
				Name:  "set",
				Usage: "Persist one or more tokens",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "open",
						Usage: "Join phrase placed after the character",
					},
					&cli.StringFlag{
						Name:  "close",
						Usage: "Join phrase placed after the performer",
					},
					&cli.StringFlag{
						Name:  "separator",
						Usage: "Appended to the previous join phrase",
					},
				},
				Action: r.TokensSet,
			},
		},
	}
}

// entitiesCommand manages the local name-to-entity cache
func entitiesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "entities",
		Aliases: []string{"entity"},
		Usage:   "Manage cached entity links",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Cache a name for an entity",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
					&cli.StringArg{Name: "mbid"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "canonical",
						Usage: "Canonical name when name is a variation",
					},
				},
				Action: r.EntitiesAdd,
			},
			{
				Name:  "list",
				Usage: "List cached entities",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.EntitiesList,
			},
			{
				Name:   "scan",
				Usage:  "Cache every entity link rendered on a page",
				Flags:  []cli.Flag{urlFlag()},
				Action: r.EntitiesScan,
			},
		},
	}
}

// lookupCommand fetches an entity's relationships
func lookupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Show the artist relationships of an entity",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "mbid"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "voice",
				Usage: "Only show voice actor relationships",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the entity page in the default browser",
			},
		},
		Action: r.Lookup,
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
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive credit editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive credit editor",
		Action:  r.TUI,
	}
}
