package credits

import (
	"testing"

	"github.com/desertthunder/creditx/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestExtractArtist(t *testing.T) {
	tt := []struct {
		name   string
		title  string
		want   string
		wantOK bool
	}{
		{name: "remix marker", title: "Song Title (XYZ Remix)", want: "XYZ", wantOK: true},
		{name: "ver marker", title: "Song (Piano Ver.)", want: "Piano", wantOK: true},
		{name: "lowercase ver", title: "曲名 (ぺこら ver)", want: "ぺこら", wantOK: true},
		{name: "version marker", title: "Song (ABC Version)", want: "ABC", wantOK: true},
		{name: "solo marker", title: "曲名 (ぺこらソロ)", want: "ぺこら", wantOK: true},
		{name: "whitespace before token", title: "Song - XYZ Remix", want: "XYZ", wantOK: true},
		{name: "plain title", title: "Plain Title", wantOK: false},
		{name: "empty title", title: "", wantOK: false},
		{name: "marker inside a word", title: "The Overture", wantOK: false},
		{name: "token too long", title: "Song (Extended Remix)", wantOK: false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractArtist(tc.title)
			if ok != tc.wantOK {
				t.Fatalf("ExtractArtist(%q) ok = %v, want %v", tc.title, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("ExtractArtist(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestExtractArtists(t *testing.T) {
	got := ExtractArtists([]string{"A (XYZ Remix)", "Plain"})
	want := []Guess{
		{Title: "A (XYZ Remix)", Artist: "XYZ", Found: true},
		{Title: "Plain"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractArtists() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEntity(t *testing.T) {
	links := []models.EntityLink{
		{Name: "Shown Name", ID: "id-variant", Variant: true, Canonical: "Canonical"},
		{Name: "Character", ID: "id-char"},
		{Name: "character", ID: "id-lower"},
		{Name: "No ID"},
	}

	tt := []struct {
		name   string
		lookup string
		want   string
		wantOK bool
	}{
		{name: "exact match", lookup: "Character", want: "id-char", wantOK: true},
		{name: "variant matches canonical", lookup: "Canonical", want: "id-variant", wantOK: true},
		{name: "variant rendered name ignored", lookup: "Shown Name", wantOK: false},
		{name: "case insensitive fallback", lookup: "CANONICAL", want: "id-variant", wantOK: true},
		{name: "trimmed input", lookup: "  Character ", want: "id-char", wantOK: true},
		{name: "links without id skipped", lookup: "No ID", wantOK: false},
		{name: "empty name", lookup: "", wantOK: false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveEntity(links, tc.lookup)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ResolveEntity(%q) = (%q, %v), want (%q, %v)", tc.lookup, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
