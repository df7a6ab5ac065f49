package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/urfave/cli/v3"
)

// TokensShow prints the effective voice-credit tokens.
func (r *Runner) TokensShow(ctx context.Context, cmd *cli.Command) error {
	editor, err := r.newEditor(nil)
	if err != nil {
		return err
	}

	tokens, err := editor.Tokens()
	if err != nil {
		return fmt.Errorf("failed to load tokens: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tokens, true)
	}

	r.writePlain("Open:      %q\n", tokens.Open)
	r.writePlain("Close:     %q\n", tokens.Close)
	return r.writePlain("Separator: %q\n", tokens.Separator)
}

// TokensSet persists the given voice-credit tokens.
func (r *Runner) TokensSet(ctx context.Context, cmd *cli.Command) error {
	tokens := models.VoiceTokens{
		Open:      cmd.String("open"),
		Close:     cmd.String("close"),
		Separator: cmd.String("separator"),
	}
	if tokens == (models.VoiceTokens{}) {
		return fmt.Errorf("%w: set at least one of --open, --close or --separator", shared.ErrMissingArgument)
	}

	editor, err := r.newEditor(nil)
	if err != nil {
		return err
	}

	if err := editor.ConfigureTokens(ctx, tokens); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	r.logger.Info("saved voice tokens")

	return r.TokensShow(ctx, cmd)
}
