// package services defines the lookups the voice credit flow depends on
//
// MusicBrainz (relationships), page and cache scans (name resolution)
package services

import (
	"context"

	"github.com/desertthunder/creditx/internal/models"
)

// RelationshipLookup fetches the relationships of an entity from the remote data service.
type RelationshipLookup interface {
	// Relationships returns every artist-artist relationship of the entity identified by mbid.
	Relationships(ctx context.Context, mbid string) ([]models.Relationship, error)
}

// Locator resolves a displayed name to an entity identifier.
//
// Implementations scan whatever rendered name/link pairs they have (a live page, the local cache)
// and return [shared.ErrEntityNotFound] on a miss.
type Locator interface {
	Locate(ctx context.Context, name string) (string, error)
}

// Locators tries each [Locator] in order and returns the first hit.
type Locators []Locator

// Locate returns the first identifier found, or the last error when every locator misses.
func (l Locators) Locate(ctx context.Context, name string) (string, error) {
	var lastErr error
	for _, loc := range l {
		id, err := loc.Locate(ctx, name)
		if err == nil && id != "" {
			return id, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errNoLocators
	}
	return "", lastErr
}
