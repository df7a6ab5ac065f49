package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/creditx/internal/browser"
	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/services"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/desertthunder/creditx/internal/slots"
	"github.com/desertthunder/creditx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// openPage opens the editor page at url with the configured browser settings.
func (r *Runner) openPage(ctx context.Context, url string) (*browser.Editor, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: --url is required", shared.ErrMissingArgument)
	}

	r.logger.Info("opening editor page", "url", url)
	page, err := browser.Open(ctx, browser.ConfigFrom(r.config.Browser), url, r.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	return page, nil
}

// Fill parses a credit string into the credit inputs of a live editor page.
func (r *Runner) Fill(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: credit text is required", shared.ErrMissingArgument)
	}

	page, err := r.openPage(ctx, cmd.String("url"))
	if err != nil {
		return err
	}
	defer page.Close()

	editor := tasks.NewEditor(tasks.EditorOpts{Logger: r.logger})
	sync := slots.New(page, r.syncOptions())

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go r.logProgress(progress, done)

	seq, err := editor.ParseAndFill(ctx, sync, text, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	r.writePlain("✓ Filled %d credits\n", len(seq))
	return r.writePlain("  %s\n", credits.Format(seq))
}

// Voice appends the voice actor of the last credited character on a live editor page.
//
// Names resolve against the page's own links first, then the entity cache.
func (r *Runner) Voice(ctx context.Context, cmd *cli.Command) error {
	page, err := r.openPage(ctx, cmd.String("url"))
	if err != nil {
		return err
	}
	defer page.Close()

	cache, err := r.entities()
	if err != nil {
		return err
	}

	editor, err := r.newEditor(services.Locators{page, cache})
	if err != nil {
		return err
	}
	sync := slots.New(page, r.syncOptions())

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go r.logProgress(progress, done)

	res, err := editor.AppendVoiceCredit(ctx, sync, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("voice credit failed: %w", err)
	}

	r.writePlain("✓ Credited %s as the voice of %s\n", res.PerformerName, res.Character)
	return r.writePlain("  Performer: %s\n", res.PerformerID)
}
