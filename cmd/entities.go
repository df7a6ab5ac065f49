package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/urfave/cli/v3"
)

// EntitiesAdd caches a name for an entity. The identifier may be an MBID or an entity page URL.
func (r *Runner) EntitiesAdd(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	id := strings.TrimSpace(cmd.StringArg("mbid"))
	if name == "" || id == "" {
		return fmt.Errorf("%w: usage: entities add <name> <mbid>", shared.ErrMissingArgument)
	}
	if mbid, ok := shared.MBIDFromURL(id); ok {
		id = mbid
	}

	repo, err := r.entities()
	if err != nil {
		return err
	}

	canonical := cmd.String("canonical")
	entity := models.NewEntity(models.EntityLink{Name: name, ID: id, Variant: canonical != "", Canonical: canonical})
	if err := repo.Create(entity); err != nil {
		return fmt.Errorf("failed to cache entity: %w", err)
	}

	r.logger.Info("cached entity", "name", name, "mbid", id)
	return r.writePlain("✓ Cached %s → %s\n", name, id)
}

// EntitiesList prints every cached entity in insertion order.
func (r *Runner) EntitiesList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.entities()
	if err != nil {
		return err
	}

	entities, err := repo.List()
	if err != nil {
		return fmt.Errorf("failed to list entities: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entities, true)
	}

	if len(entities) == 0 {
		return r.writePlain("No cached entities. Run 'creditx entities scan --url <page>' to add some.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Cached entities (%d)", len(entities)))
	for _, e := range entities {
		line := fmt.Sprintf("%3d. %s  %s", e.Sequence, shared.Truncate(e.Name, 40), e.MBID)
		if e.Variant {
			line += fmt.Sprintf("  (variation of %s)", e.Canonical)
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

// EntitiesScan caches every entity link rendered on a page.
func (r *Runner) EntitiesScan(ctx context.Context, cmd *cli.Command) error {
	page, err := r.openPage(ctx, cmd.String("url"))
	if err != nil {
		return err
	}
	defer page.Close()

	links, err := page.Links(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan links: %w", err)
	}

	repo, err := r.entities()
	if err != nil {
		return err
	}

	created, err := repo.SaveLinks(links)
	if err != nil {
		return fmt.Errorf("failed to cache links: %w", err)
	}

	r.logger.Info("scanned entity links", "found", len(links), "created", created)
	return r.writePlain("✓ Found %d links, cached %d new entities\n", len(links), created)
}
