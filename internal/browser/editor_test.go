package browser

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/desertthunder/creditx/internal/slots"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/google/go-cmp/cmp"
)

var (
	_ slots.Host   = (*Editor)(nil)
	_ slots.Waiter = (*Editor)(nil)
)

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(shared.DefaultConfig().Browser)

	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if got := cfg.inputs(); got != ".artist-credit-editor input[type=text]" {
		t.Errorf("unexpected input selector %q", got)
	}
	if got := cfg.add(); got != ".artist-credit-editor button.add-item" {
		t.Errorf("unexpected add selector %q", got)
	}

	cfg.ContainerSelector = ""
	if got := cfg.inputs(); got != "input[type=text]" {
		t.Errorf("unscoped selector = %q", got)
	}
}

func TestFieldIndex(t *testing.T) {
	tests := []struct {
		slot int
		f    models.Field
		want int
	}{
		{0, models.FieldEntity, 0},
		{0, models.FieldConnective, 2},
		{1, models.FieldEntity, 3},
		{2, models.FieldDisplayName, 7},
	}

	for _, tt := range tests {
		if got := fieldIndex(tt.slot, tt.f); got != tt.want {
			t.Errorf("fieldIndex(%d, %s) = %d, want %d", tt.slot, tt.f, got, tt.want)
		}
	}
}

func TestLinksFrom(t *testing.T) {
	const (
		a = "5b11f4ce-a62d-471e-81fc-a69a8278c7da"
		b = "0d0f6f0a-7c6b-4d3a-9d6e-3b7a7b8c9d01"
	)

	raw := []rawLink{
		{Name: "Performer", Href: "https://musicbrainz.org/artist/" + a},
		{Name: "Credited", Href: "https://musicbrainz.org/artist/" + b + "?x=1", Canonical: "Character"},
		{Name: "Edit", Href: "https://musicbrainz.org/artist/create"},
		{Name: "", Href: "https://musicbrainz.org/artist/" + a},
	}

	want := []models.EntityLink{
		{Name: "Performer", ID: a},
		{Name: "Credited", ID: b, Variant: true, Canonical: "Character"},
	}
	if diff := cmp.Diff(want, linksFrom(raw)); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
}

const (
	performerID = "5b11f4ce-a62d-471e-81fc-a69a8278c7da"
	characterID = "0d0f6f0a-7c6b-4d3a-9d6e-3b7a7b8c9d01"
)

// editorPage renders one slot, adds slots after a delay and records every input event.
const editorPage = `<!doctype html>
<html><body>
<div class="artist-credit-editor">
  <div id="rows"><span><input type="text"><input type="text"><input type="text"></span></div>
  <button class="add-item" type="button" onclick="addRow()">Add</button>
</div>
<span class="name-variation" title="Character"><a href="/artist/` + characterID + `">Credited</a></span>
<a href="/artist/` + performerID + `">Performer</a>
<script>
window.events = [];
document.addEventListener('input', (e) => window.events.push(e.target.value));
function addRow() {
  setTimeout(() => {
    const row = document.createElement('span');
    for (let i = 0; i < 3; i++) {
      const input = document.createElement('input');
      input.type = 'text';
      row.appendChild(input);
    }
    document.getElementById('rows').appendChild(row);
  }, 100);
}
</script>
</body></html>`

// openTestEditor serves html and opens it in a local headless browser, skipping when none is installed.
func openTestEditor(t *testing.T, html string) *Editor {
	t.Helper()

	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no chromium browser found")
	}

	l := launcher.New().Bin(bin).Headless(true).NoSandbox(true)
	controlURL, err := l.Launch()
	if err != nil {
		t.Skipf("failed to launch browser: %v", err)
	}
	t.Cleanup(l.Kill)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, html)
	}))
	t.Cleanup(server.Close)

	cfg := ConfigFrom(shared.DefaultConfig().Browser)
	cfg.ControlURL = controlURL
	cfg.Timeout = 10 * time.Second

	editor, err := Open(context.Background(), cfg, server.URL, nil)
	if err != nil {
		t.Fatalf("failed to open editor page: %v", err)
	}
	t.Cleanup(func() { editor.Close() })
	return editor
}

func pageEvents(t *testing.T, e *Editor) string {
	t.Helper()

	res, err := e.page.Eval(`() => window.events.join('|')`)
	if err != nil {
		t.Fatalf("failed to read input events: %v", err)
	}
	return res.Value.Str()
}

func TestEditorPage(t *testing.T) {
	editor := openTestEditor(t, editorPage)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Count", func(t *testing.T) {
		n, err := editor.Count(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 slot, got %d", n)
		}
	})

	t.Run("Write Fires Input Event", func(t *testing.T) {
		ok, err := editor.Write(ctx, 0, models.FieldEntity, "Someone")
		if err != nil || !ok {
			t.Fatalf("expected write to land, got %v (%v)", ok, err)
		}

		got, ok, err := editor.Read(ctx, 0, models.FieldEntity)
		if err != nil || !ok || got != "Someone" {
			t.Errorf("expected 'Someone', got %q, %v (%v)", got, ok, err)
		}
		if events := pageEvents(t, editor); !strings.Contains(events, "Someone") {
			t.Errorf("expected an input event for the write, got %q", events)
		}
	})

	t.Run("Missing Field Is A No-op", func(t *testing.T) {
		ok, err := editor.Write(ctx, 4, models.FieldEntity, "Nobody")
		if err != nil || ok {
			t.Errorf("expected dropped write, got %v (%v)", ok, err)
		}
		if _, ok, _ := editor.Read(ctx, 4, models.FieldEntity); ok {
			t.Error("expected missing field on read")
		}
	})

	t.Run("RequestSlot And WaitSlots", func(t *testing.T) {
		if err := editor.RequestSlot(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := editor.WaitSlots(ctx, 2); err != nil {
			t.Fatalf("expected slot to materialize, got %v", err)
		}
		if n, _ := editor.Count(ctx); n != 2 {
			t.Errorf("expected 2 slots, got %d", n)
		}
	})

	t.Run("Fill Through Synchronizer", func(t *testing.T) {
		seq := credits.Parse("A & B feat. C")
		sync := slots.New(editor, slots.Options{SettleTimeout: 5 * time.Second})

		if err := sync.Fill(ctx, seq); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, err := sync.ReadAll(ctx, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if diff := cmp.Diff(seq, got); diff != "" {
			t.Errorf("page slots mismatch (-want +got):\n%s", diff)
		}
		if events := pageEvents(t, editor); !strings.Contains(events, " feat. ") {
			t.Errorf("expected input events for filled connectives, got %q", events)
		}
	})

	t.Run("Links", func(t *testing.T) {
		links, err := editor.Links(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []models.EntityLink{
			{Name: "Credited", ID: characterID, Variant: true, Canonical: "Character"},
			{Name: "Performer", ID: performerID},
		}
		if diff := cmp.Diff(want, links); diff != "" {
			t.Errorf("links mismatch (-want +got):\n%s", diff)
		}

		id, err := editor.Locate(ctx, "Character")
		if err != nil || id != characterID {
			t.Errorf("expected %s, got %q (%v)", characterID, id, err)
		}
	})
}
