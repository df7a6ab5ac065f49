// Package credits turns free text into credit sequences and back.
//
// # Tokenization
//
// [Parse] segments text on a fixed set of connective patterns: commas, ampersands, the CJK list
// separators (、，・), the conjunctions "feat", "ft", "vs" and "featuring" (each after a space,
// matched case-insensitively) and the "(CV" / ")" markers of the voice-credit convention.
// Each match is recorded verbatim as the connective of the entity before it.
//
// The policy is deterministic but not idempotent: [Format] followed by [Parse] may not return
// the original sequence, because connectives are captured as written rather than rebuilt.
//
// # Titles
//
// [ExtractArtist] pulls a short performer token out of a track title such as "Song (XYZ Remix)".
//
// # On-screen names
//
// [ResolveEntity] maps a display name to an identifier using scanned [models.EntityLink] pairs.
package credits
