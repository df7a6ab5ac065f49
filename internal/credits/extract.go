package credits

import "regexp"

// titleArtistPattern captures a short token right before a "ver", "remix" or "ソロ" marker.
var titleArtistPattern = regexp.MustCompile(
	`[(\s]([^\s()]{1,6}?)\s?(?:(?i:ver(?:sion)?|remix)(?:[^\p{L}]|$)|ソロ)`,
)

// Guess is the result of running [ExtractArtist] on one title.
type Guess struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Found  bool   `json:"found"`
}

// ExtractArtist returns the performer token of a title like "Song (XYZ Remix)".
//
// The second return is false when nothing matched; callers should leave existing values alone.
func ExtractArtist(title string) (string, bool) {
	m := titleArtistPattern.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractArtists applies [ExtractArtist] to each title in order.
func ExtractArtists(titles []string) []Guess {
	guesses := make([]Guess, 0, len(titles))
	for _, title := range titles {
		artist, ok := ExtractArtist(title)
		guesses = append(guesses, Guess{Title: title, Artist: artist, Found: ok})
	}
	return guesses
}
