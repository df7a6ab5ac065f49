// package models defines the data model for credit editing
package models

import (
	"errors"
	"strings"
	"time"
)

// Field identifies one of the three fields of an editable slot.
//
// The numeric order matches the order inputs are grouped in on the page.
type Field int

const (
	FieldEntity Field = iota
	FieldDisplayName
	FieldConnective
)

// FieldsPerSlot is the size of one slot's field group.
const FieldsPerSlot = 3

// Fields lists every [Field] in group order.
var Fields = []Field{FieldEntity, FieldDisplayName, FieldConnective}

func (f Field) String() string {
	switch f {
	case FieldEntity:
		return "entity"
	case FieldDisplayName:
		return "display_name"
	case FieldConnective:
		return "connective"
	default:
		return ""
	}
}

// ParseField maps a field name (or a short alias) to a [Field].
func ParseField(s string) (Field, bool) {
	switch s {
	case "entity", "artist", "e":
		return FieldEntity, true
	case "display_name", "name", "credited", "d":
		return FieldDisplayName, true
	case "connective", "join", "c":
		return FieldConnective, true
	default:
		return 0, false
	}
}

// Credit is one entry in a credit sequence.
//
// Empty DisplayName or Connective means the value is absent.
type Credit struct {
	Entity      string `json:"entity"`
	DisplayName string `json:"display_name,omitempty"`
	Connective  string `json:"connective,omitempty"`
}

// Get returns the value of field f.
func (c Credit) Get(f Field) string {
	switch f {
	case FieldEntity:
		return c.Entity
	case FieldDisplayName:
		return c.DisplayName
	case FieldConnective:
		return c.Connective
	default:
		return ""
	}
}

// With returns a copy of c with field f set to v.
func (c Credit) With(f Field, v string) Credit {
	switch f {
	case FieldEntity:
		c.Entity = v
	case FieldDisplayName:
		c.DisplayName = v
	case FieldConnective:
		c.Connective = v
	}
	return c
}

// IsZero reports whether every field is empty.
func (c Credit) IsZero() bool {
	return c.Entity == "" && c.DisplayName == "" && c.Connective == ""
}

// CreditSequence is an ordered list of credits. Order reproduces reading order.
type CreditSequence []Credit

// Len returns the number of credits.
func (s CreditSequence) Len() int { return len(s) }

// Last returns the final credit, or false on an empty sequence.
func (s CreditSequence) Last() (Credit, bool) {
	if len(s) == 0 {
		return Credit{}, false
	}
	return s[len(s)-1], true
}

// Entities returns the entity of every credit in order.
func (s CreditSequence) Entities() []string {
	out := make([]string, 0, len(s))
	for _, c := range s {
		out = append(out, c.Entity)
	}
	return out
}

// EntityLink is a rendered name/link pair.
//
// Variant links render a credited name that differs from the entity's canonical name.
type EntityLink struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Variant   bool   `json:"variant,omitempty"`
	Canonical string `json:"canonical,omitempty"`
}

// Key is the name the link should be matched on.
func (l EntityLink) Key() string {
	if l.Variant && l.Canonical != "" {
		return l.Canonical
	}
	return l.Name
}

// Relationship is a typed link between two entities as reported by the remote data service.
type Relationship struct {
	TypeID     string `json:"type_id"`
	Type       string `json:"type"`
	Direction  string `json:"direction"`
	Ended      bool   `json:"ended"`
	End        string `json:"end,omitempty"`
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
}

// Active reports whether the relationship has not ended.
func (r Relationship) Active() bool {
	return !r.Ended && r.End == ""
}

// VoiceTokens are the connective tokens used when appending a voice credit.
type VoiceTokens struct {
	Open      string `json:"open" toml:"open_token"`
	Close     string `json:"close" toml:"close_token"`
	Separator string `json:"separator" toml:"separator"`
}

// DefaultVoiceTokens returns the built-in tokens.
func DefaultVoiceTokens() VoiceTokens {
	return VoiceTokens{Open: " (CV ", Close: ")", Separator: ","}
}

// Merge fills empty fields of t from defaults.
func (t VoiceTokens) Merge(defaults VoiceTokens) VoiceTokens {
	if t.Open == "" {
		t.Open = defaults.Open
	}
	if t.Close == "" {
		t.Close = defaults.Close
	}
	if t.Separator == "" {
		t.Separator = defaults.Separator
	}
	return t
}

// Entity is a cached name/link pair as persisted by the local store.
type Entity struct {
	ID        string    `json:"id"`
	Sequence  int       `json:"sequence"`
	Name      string    `json:"name"`
	MBID      string    `json:"mbid"`
	Variant   bool      `json:"variant,omitempty"`
	Canonical string    `json:"canonical,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntity creates an unsaved Entity for link.
func NewEntity(link EntityLink) *Entity {
	now := time.Now()
	return &Entity{
		Name:      link.Name,
		MBID:      link.ID,
		Variant:   link.Variant,
		Canonical: link.Canonical,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Link returns the entity as an [EntityLink].
func (e Entity) Link() EntityLink {
	return EntityLink{Name: e.Name, ID: e.MBID, Variant: e.Variant, Canonical: e.Canonical}
}

// Validate checks the fields required for persistence.
func (e Entity) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("entity name is required")
	}
	if e.MBID == "" {
		return errors.New("entity mbid is required")
	}
	return nil
}
