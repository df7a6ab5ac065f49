package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/formatter"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/desertthunder/creditx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Parse splits a credit string and prints the entries.
func (r *Runner) Parse(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: credit text is required", shared.ErrMissingArgument)
	}

	seq := credits.Parse(text)
	r.logger.Debug("parsed credits", "count", len(seq))

	if cmd.Bool("json") {
		return r.writeJSON(seq, cmd.Bool("pretty"))
	}

	var format formatter.Format
	if f := cmd.String("format"); f != "" {
		parsed, err := formatter.ParseFormat(f)
		if err != nil {
			return err
		}
		format = parsed
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(seq, format, path); err != nil {
			return err
		}
		r.logger.Info("exported credits", "path", path, "count", len(seq))
		return r.writePlain("✓ Exported %d credits to %s\n", len(seq), path)
	}

	if format != "" {
		data, err := formatter.Export(seq, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	r.printCredits(seq)
	return r.writePlainln("Formatted: %s", credits.Format(seq))
}

// printCredits writes a numbered listing. Credited names are shown only when they differ from the entity.
func (r *Runner) printCredits(seq models.CreditSequence) {
	r.writePlainHeader(fmt.Sprintf("Credits (%d)", len(seq)))
	for i, c := range seq {
		line := fmt.Sprintf("%d. %s", i+1, c.Entity)
		if c.DisplayName != "" && c.DisplayName != c.Entity {
			line += fmt.Sprintf(" (as %s)", c.DisplayName)
		}
		if c.Connective != "" {
			line += fmt.Sprintf(" %q", c.Connective)
		}
		r.writePlain("%s\n", line)
	}
}

// Extract guesses the performer of each title.
func (r *Runner) Extract(ctx context.Context, cmd *cli.Command) error {
	titles := cmd.Args().Slice()

	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read titles: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				titles = append(titles, line)
			}
		}
	}

	if len(titles) == 0 {
		return fmt.Errorf("%w: provide titles or --file", shared.ErrMissingArgument)
	}

	editor := tasks.NewEditor(tasks.EditorOpts{Logger: r.logger})
	guesses := editor.GuessArtists(titles)

	if cmd.Bool("json") {
		return r.writeJSON(guesses, true)
	}

	found := 0
	for _, g := range guesses {
		if !g.Found {
			r.writePlain("✗ %s\n", g.Title)
			continue
		}
		found++
		r.writePlain("✓ %s → %s\n", g.Title, g.Artist)
	}
	return r.writePlainln("Found %d of %d", found, len(guesses))
}
