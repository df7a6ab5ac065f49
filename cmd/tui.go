package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/desertthunder/creditx/internal/slots"
	"github.com/desertthunder/creditx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive credit editor over an in-memory slot list.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.Editor.LogPath
	if logPath == "" {
		logPath = "./tmp/creditx-tui.log"
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	cache, err := r.entities()
	if err != nil {
		return err
	}
	editor, err := r.newEditor(cache)
	if err != nil {
		return err
	}

	host := slots.NewMemoryHost(r.config.Editor.AddDelay())
	defer host.Close()

	model := ui.NewModel(ctx, ui.ModelOpts{
		Host:   host,
		Sync:   slots.New(host, r.syncOptions()),
		Editor: editor,
		Logger: r.logger,
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
