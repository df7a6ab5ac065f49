package models

import (
	"testing"
)

func TestField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
		ok   bool
	}{
		{in: "entity", want: FieldEntity, ok: true},
		{in: "name", want: FieldDisplayName, ok: true},
		{in: "join", want: FieldConnective, ok: true},
		{in: "c", want: FieldConnective, ok: true},
		{in: "colour", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseField(tt.in)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ParseField(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCredit(t *testing.T) {
	c := Credit{Entity: "A"}.With(FieldConnective, " & ").With(FieldDisplayName, "Alias")

	for _, f := range Fields {
		if c.Get(f) == "" {
			t.Errorf("expected %s to be set", f)
		}
	}
	if c.IsZero() {
		t.Error("expected non-zero credit")
	}
	if !(Credit{}).IsZero() {
		t.Error("expected zero credit")
	}
}

func TestCreditSequence(t *testing.T) {
	var empty CreditSequence
	if _, ok := empty.Last(); ok {
		t.Error("expected no last credit in empty sequence")
	}

	seq := CreditSequence{{Entity: "A", Connective: " & "}, {Entity: "B"}}
	last, ok := seq.Last()
	if !ok || last.Entity != "B" {
		t.Errorf("expected last credit B, got %+v", last)
	}
	if got := seq.Entities(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("unexpected entities %v", got)
	}
}

func TestEntityLink(t *testing.T) {
	t.Run("Key uses canonical name for variants", func(t *testing.T) {
		link := EntityLink{Name: "Alias", ID: "x", Variant: true, Canonical: "Real"}
		if link.Key() != "Real" {
			t.Errorf("expected Real, got %q", link.Key())
		}
	})

	t.Run("Entity round trip", func(t *testing.T) {
		link := EntityLink{Name: "Alias", ID: "x", Variant: true, Canonical: "Real"}
		if got := NewEntity(link).Link(); got != link {
			t.Errorf("expected %+v, got %+v", link, got)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := (Entity{Name: " "}).Validate(); err == nil {
			t.Error("expected error for blank name")
		}
		if err := (Entity{Name: "A"}).Validate(); err == nil {
			t.Error("expected error for missing mbid")
		}
		if err := (Entity{Name: "A", MBID: "x"}).Validate(); err != nil {
			t.Errorf("expected valid entity, got %v", err)
		}
	})
}

func TestRelationshipActive(t *testing.T) {
	if !(Relationship{}).Active() {
		t.Error("expected open relationship to be active")
	}
	if (Relationship{Ended: true}).Active() {
		t.Error("expected ended relationship to be inactive")
	}
	if (Relationship{End: "2019"}).Active() {
		t.Error("expected relationship with end date to be inactive")
	}
}

func TestVoiceTokensMerge(t *testing.T) {
	got := VoiceTokens{Open: "["}.Merge(DefaultVoiceTokens())
	want := VoiceTokens{Open: "[", Close: ")", Separator: ","}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
