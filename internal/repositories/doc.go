// Package repositories implements SQLite persistence for settings and the entity link cache.
//
// Key Implementations:
//   - [SettingsRepository] : key-value settings (voice-credit tokens) with upsert semantics
//   - [EntityRepository] : cached name/link pairs, usable as a name [services.Locator]
//
// Sequence numbers provide stable, human-readable ordering (e.g., entity #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
