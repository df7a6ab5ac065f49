package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/creditx/internal/services"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Lookup prints the artist relationships of an entity.
func (r *Runner) Lookup(ctx context.Context, cmd *cli.Command) error {
	mbid := strings.TrimSpace(cmd.StringArg("mbid"))
	if mbid == "" {
		return fmt.Errorf("%w: mbid is required", shared.ErrMissingArgument)
	}
	if id, ok := shared.MBIDFromURL(mbid); ok {
		mbid = id
	}

	if cmd.Bool("open") {
		url := shared.EntityURL(r.config.MusicBrainz.BaseURL, "artist", mbid)
		r.logger.Info("opening entity page", "url", url)
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	r.logger.Info("looking up relationships", "service", r.musicbrainz.Name(), "mbid", mbid)
	rels, err := r.musicbrainz.Relationships(ctx, mbid)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if cmd.Bool("voice") {
		typeID := r.config.Voice.RelationshipTypeID
		if typeID == "" {
			typeID = services.VoiceActorTypeID
		}
		rels = services.FilterRelationships(rels, typeID, services.DirectionBackward)
	}

	if cmd.Bool("json") {
		return r.writeJSON(rels, true)
	}

	if len(rels) == 0 {
		return r.writePlain("No relationships found for %s\n", mbid)
	}

	r.writePlainHeader(fmt.Sprintf("Relationships of %s (%d)", mbid, len(rels)))
	for _, rel := range rels {
		status := "active"
		if !rel.Active() {
			status = "ended"
		}
		r.writePlain("%-14s %-9s %s  %s [%s]\n", rel.Type, rel.Direction, rel.TargetName, rel.TargetID, status)
	}
	return nil
}
