package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const setValueJS = `(v) => {
	const setter = Object.getOwnPropertyDescriptor(HTMLInputElement.prototype, 'value').set;
	setter.call(this, v);
	this.dispatchEvent(new Event('input', { bubbles: true }));
	this.dispatchEvent(new Event('change', { bubbles: true }));
}`

const scanLinksJS = `(sel) => Array.from(document.querySelectorAll(sel)).map((a) => {
	const variation = a.closest('.name-variation');
	const title = variation ? (variation.getAttribute('title') || '') : '';
	return { name: (a.textContent || '').trim(), href: a.href, canonical: title };
})`

// Config contains settings for driving an editor page.
type Config struct {
	ControlURL        string
	Headless          bool
	Timeout           time.Duration
	ContainerSelector string
	InputSelector     string
	AddSelector       string
	LinkSelector      string
}

// ConfigFrom converts the TOML browser section into a Config.
func ConfigFrom(c shared.BrowserConfig) Config {
	return Config{
		ControlURL:        c.ControlURL,
		Headless:          c.Headless,
		Timeout:           c.Timeout(),
		ContainerSelector: c.ContainerSelector,
		InputSelector:     c.InputSelector,
		AddSelector:       c.AddSelector,
		LinkSelector:      c.LinkSelector,
	}
}

func (c Config) inputs() string {
	return scoped(c.ContainerSelector, c.InputSelector)
}

func (c Config) add() string {
	return scoped(c.ContainerSelector, c.AddSelector)
}

func scoped(container, sel string) string {
	if container == "" {
		return sel
	}
	return container + " " + sel
}

// Editor is a live editor page.
type Editor struct {
	cfg      Config
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
	logger   *log.Logger
}

// Open connects to the browser at cfg.ControlURL, or launches one when it is empty, and opens url.
func Open(ctx context.Context, cfg Config, url string, logger *log.Logger) (*Editor, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var l *launcher.Launcher
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l = launcher.New().Headless(cfg.Headless)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		closeBrowser(browser, l)
		return nil, fmt.Errorf("open page: %w", err)
	}

	waiter := page
	if cfg.Timeout > 0 {
		waiter = page.Timeout(cfg.Timeout)
	}
	if err := waiter.WaitLoad(); err != nil {
		closeBrowser(browser, l)
		return nil, fmt.Errorf("wait for page load: %w", err)
	}

	logger.Debug("opened editor page", "url", url, "launched", l != nil)
	return &Editor{cfg: cfg, browser: browser, page: page, launcher: l, logger: logger}, nil
}

func closeBrowser(b *rod.Browser, l *launcher.Launcher) {
	if l == nil {
		return
	}
	_ = b.Close()
	l.Kill()
}

// Close shuts down a launched browser. A browser connected through ControlURL is left running.
func (e *Editor) Close() error {
	closeBrowser(e.browser, e.launcher)
	return nil
}

func (e *Editor) elements(ctx context.Context) (rod.Elements, error) {
	els, err := e.page.Context(ctx).Elements(e.cfg.inputs())
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	return els, nil
}

func fieldIndex(slot int, f models.Field) int {
	return slot*models.FieldsPerSlot + int(f)
}

func (e *Editor) field(ctx context.Context, slot int, f models.Field) (*rod.Element, error) {
	if slot < 0 {
		return nil, nil
	}
	els, err := e.elements(ctx)
	if err != nil {
		return nil, err
	}
	i := fieldIndex(slot, f)
	if i >= len(els) {
		return nil, nil
	}
	return els[i], nil
}

func (e *Editor) RequestSlot(ctx context.Context) error {
	el, err := e.page.Context(ctx).Element(e.cfg.add())
	if err != nil {
		return fmt.Errorf("find add button: %w", err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *Editor) Count(ctx context.Context) (int, error) {
	els, err := e.elements(ctx)
	if err != nil {
		return 0, err
	}
	return len(els) / models.FieldsPerSlot, nil
}

func (e *Editor) Read(ctx context.Context, slot int, f models.Field) (string, bool, error) {
	el, err := e.field(ctx, slot, f)
	if err != nil || el == nil {
		return "", false, err
	}

	v, err := el.Property("value")
	if err != nil {
		return "", false, fmt.Errorf("read value: %w", err)
	}
	return v.Str(), true, nil
}

func (e *Editor) Write(ctx context.Context, slot int, f models.Field, value string) (bool, error) {
	el, err := e.field(ctx, slot, f)
	if err != nil || el == nil {
		return false, err
	}

	if _, err := el.Context(ctx).Eval(setValueJS, value); err != nil {
		return false, fmt.Errorf("write value: %w", err)
	}
	return true, nil
}

// WaitSlots blocks until the page renders at least n slots.
func (e *Editor) WaitSlots(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return e.page.Context(ctx).WaitElementsMoreThan(e.cfg.inputs(), fieldIndex(n, 0)-1)
}

type rawLink struct {
	Name      string `json:"name"`
	Href      string `json:"href"`
	Canonical string `json:"canonical"`
}

// linksFrom keeps links that point at an entity, marking those inside a name variation.
func linksFrom(raw []rawLink) []models.EntityLink {
	links := make([]models.EntityLink, 0, len(raw))
	for _, r := range raw {
		id, ok := shared.MBIDFromURL(r.Href)
		if !ok || r.Name == "" {
			continue
		}
		links = append(links, models.EntityLink{
			Name:      r.Name,
			ID:        id,
			Variant:   r.Canonical != "",
			Canonical: r.Canonical,
		})
	}
	return links
}

// Links scans the page for rendered entity links.
func (e *Editor) Links(ctx context.Context) ([]models.EntityLink, error) {
	res, err := e.page.Context(ctx).Evaluate(rod.Eval(scanLinksJS, e.cfg.LinkSelector))
	if err != nil {
		return nil, fmt.Errorf("scan links: %w", err)
	}

	data, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("scan links: %w", err)
	}

	var raw []rawLink
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}
	return linksFrom(raw), nil
}

// Locate resolves name against the links rendered on the page.
func (e *Editor) Locate(ctx context.Context, name string) (string, error) {
	links, err := e.Links(ctx)
	if err != nil {
		return "", err
	}

	id, ok := credits.ResolveEntity(links, name)
	if !ok {
		e.logger.Debug("name not on page", "name", name, "links", len(links))
		return "", fmt.Errorf("%w: %q", shared.ErrEntityNotFound, name)
	}
	return id, nil
}
