package credits

import (
	"strings"

	"github.com/desertthunder/creditx/internal/models"
)

// ResolveEntity finds the identifier for name among rendered links.
//
// Variant links are matched on their canonical name. An exact pass runs before a case-insensitive one.
func ResolveEntity(links []models.EntityLink, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	for _, l := range links {
		if l.ID != "" && strings.TrimSpace(l.Key()) == name {
			return l.ID, true
		}
	}
	for _, l := range links {
		if l.ID != "" && strings.EqualFold(strings.TrimSpace(l.Key()), name) {
			return l.ID, true
		}
	}
	return "", false
}
