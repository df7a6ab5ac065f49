// Package models defines the credit data model shared by the parser, the slot synchronizer and the command layer.
//
// The package contains two categories of types:
//
// 1. Credit values: transient data produced per parse or per append
//   - [Credit] : one entity with its optional display name and trailing connective
//   - [CreditSequence] : credits in left-to-right reading order
//   - [Field] : the three independently settable fields of an editable slot
//
// 2. Lookup values: data exchanged with external collaborators
//   - [EntityLink] : a rendered name/link pair scanned from an editor page
//   - [Relationship] : a typed relationship returned by the remote data service
//   - [VoiceTokens] : the configurable tokens used by the character-voice flow
//   - [Entity] : a persisted [EntityLink] in the local name cache
//
// A [CreditSequence] has no identity of its own. It is applied to a slot list and discarded.
package models
