// Package services talks to the remote data service and defines the lookups used by the voice credit flow.
//
// # Interfaces
//
//   - [RelationshipLookup] fetches typed relationships of an entity
//   - [Locator] resolves a displayed name to an entity identifier
//
// [Locators] chains several locators, trying each in order (the live page first, then the local cache).
//
// # MusicBrainz Implementation
//
// [MusicBrainzService] reads artist-artist relationships from the MusicBrainz web service:
//
//	GET /ws/2/artist/{mbid}?inc=artist-rels&fmt=json
//
// Requests go through [APIService], which sets the User-Agent header MusicBrainz requires and
// waits on a token bucket limiter (one request per second by default).
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrInvalidInput] : identifier is not an MBID
//   - [shared.ErrEntityNotFound] : 404 from the service
//   - [shared.ErrServiceUnavailable] : 503, usually rate limiting on the service side
//   - [shared.ErrAPIRequest] : transport failure or any other non-2xx status
//
// # Voice Actors
//
// A character credit links to its performer through a "voice actor" relationship. Seen from the
// character, that relationship points backward. [FilterRelationships] with [VoiceActorTypeID] and
// [DirectionBackward], followed by [FirstActiveTarget], yields the current performer.
package services
