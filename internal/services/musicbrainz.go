// MusicBrainz web service [RelationshipLookup] implementation
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
)

const (
	// VoiceActorTypeID is the artist-artist "voice actor" relationship type.
	VoiceActorTypeID = "e259a3f5-ce8e-45c1-9ef7-90ff7d0c7589"

	DirectionForward  = "forward"
	DirectionBackward = "backward"
)

var errNoLocators = fmt.Errorf("%w: no locators configured", shared.ErrEntityNotFound)

// MusicBrainzArtist is the subset of an artist lookup response this package reads.
type MusicBrainzArtist struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Relations []MusicBrainzRelationship `json:"relations"`
}

// MusicBrainzRelationship represents one entry of an artist's relations list.
type MusicBrainzRelationship struct {
	Type      string  `json:"type"`
	TypeID    string  `json:"type-id"`
	Direction string  `json:"direction"`
	Ended     bool    `json:"ended"`
	End       *string `json:"end"`
	Artist    *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
}

// MusicBrainzService implements [RelationshipLookup] against the MusicBrainz web service.
type MusicBrainzService struct {
	api *APIService
}

// NewMusicBrainzService creates a service that issues requests through api.
func NewMusicBrainzService(api *APIService) *MusicBrainzService {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &MusicBrainzService{api: api}
}

// Name returns the service name.
func (s *MusicBrainzService) Name() string {
	return "MusicBrainz"
}

// Artist looks up an artist with its artist relationships.
func (s *MusicBrainzService) Artist(ctx context.Context, mbid string) (*MusicBrainzArtist, error) {
	if !shared.IsMBID(mbid) {
		return nil, fmt.Errorf("%w: %q is not an MBID", shared.ErrInvalidInput, mbid)
	}

	q := url.Values{}
	q.Set("inc", "artist-rels")
	q.Set("fmt", "json")

	var artist MusicBrainzArtist
	if err := s.api.GetJSON(ctx, "/ws/2/artist/"+mbid+"?"+q.Encode(), &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// Relationships returns the artist relationships of mbid mapped to [models.Relationship].
//
// Relations that do not point at an artist are skipped.
func (s *MusicBrainzService) Relationships(ctx context.Context, mbid string) ([]models.Relationship, error) {
	artist, err := s.Artist(ctx, mbid)
	if err != nil {
		return nil, err
	}

	rels := make([]models.Relationship, 0, len(artist.Relations))
	for _, r := range artist.Relations {
		if r.Artist == nil {
			continue
		}

		rel := models.Relationship{
			TypeID:     r.TypeID,
			Type:       r.Type,
			Direction:  r.Direction,
			Ended:      r.Ended,
			TargetID:   r.Artist.ID,
			TargetName: r.Artist.Name,
		}
		if r.End != nil {
			rel.End = *r.End
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

// FilterRelationships keeps relationships of the given type and direction.
//
// An empty direction matches either.
func FilterRelationships(rels []models.Relationship, typeID, direction string) []models.Relationship {
	var out []models.Relationship
	for _, r := range rels {
		if r.TypeID != typeID {
			continue
		}
		if direction != "" && r.Direction != direction {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FirstActiveTarget returns the first relationship that has not ended.
func FirstActiveTarget(rels []models.Relationship) (models.Relationship, bool) {
	for _, r := range rels {
		if r.Active() && r.TargetID != "" {
			return r, true
		}
	}
	return models.Relationship{}, false
}
