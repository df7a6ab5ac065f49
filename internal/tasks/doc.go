// Package tasks runs credit editing operations over a slot list with real-time progress reporting.
//
// # Core Operations
//
// [Editor] exposes the command triggers of the editor:
//
//  1. [Editor.ParseAndFill] : Parse credit text and fill the slot list
//     - Rejects empty text before touching any slot
//     - Reports Sizing and Writing as the synchronizer moves through them
//
//  2. [Editor.AppendVoiceCredit] : Credit the performer voicing the last credited character
//     - Resolves the character's name to an identifier through a [services.Locator]
//     - Looks up its current "voice actor" relationship through a [services.RelationshipLookup]
//     - Rewrites two connectives and appends the performer, only after both lookups succeed
//
//  3. [Editor.GuessArtists] and [Editor.GuessInto] : Guess artists from song titles
//     - A title without a match is a silent miss, logged at debug level
//
// # Voice Tokens
//
// The connective tokens used by the voice flow come from a [SettingsStore] and fall back per field
// to configured defaults. [LoadVoiceTokens] reads them once per invocation; [Editor.ConfigureTokens]
// writes through to the store.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
