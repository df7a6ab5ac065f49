// package tasks implements the editor operations that read and rewrite a credit slot list.
//
// The core abstraction is Editor, which runs parse-and-fill, the character-voice append flow and artist guessing.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/services"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/desertthunder/creditx/internal/slots"
)

// Setting keys for the voice-credit tokens.
const (
	KeyOpenToken  = "voice.open_token"
	KeyCloseToken = "voice.close_token"
	KeySeparator  = "voice.separator"
)

// SettingsStore is a key-value store for persisted settings.
type SettingsStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// VoiceResult describes a completed character-voice append.
type VoiceResult struct {
	Character     string
	CharacterID   string
	PerformerID   string
	PerformerName string
	Tokens        models.VoiceTokens
}

// EditorOpts configures an [Editor]. Nil collaborators disable the operations that need them.
type EditorOpts struct {
	Locator            services.Locator
	Lookup             services.RelationshipLookup
	Settings           SettingsStore
	Defaults           models.VoiceTokens
	RelationshipTypeID string
	Logger             *log.Logger
}

// Editor runs credit editing operations against a [slots.Synchronizer].
type Editor struct {
	locator  services.Locator
	lookup   services.RelationshipLookup
	settings SettingsStore
	defaults models.VoiceTokens
	typeID   string
	logger   *log.Logger
}

// NewEditor creates an Editor, filling unset options with defaults.
func NewEditor(opts EditorOpts) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	typeID := opts.RelationshipTypeID
	if typeID == "" {
		typeID = services.VoiceActorTypeID
	}

	return &Editor{
		locator:  opts.Locator,
		lookup:   opts.Lookup,
		settings: opts.Settings,
		defaults: opts.Defaults.Merge(models.DefaultVoiceTokens()),
		typeID:   typeID,
		logger:   logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Editor) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// LoadVoiceTokens reads the voice tokens from store, falling back to defaults per field.
//
// A nil store yields defaults.
func LoadVoiceTokens(store SettingsStore, defaults models.VoiceTokens) (models.VoiceTokens, error) {
	if store == nil {
		return defaults, nil
	}

	var tokens models.VoiceTokens
	for _, f := range []struct {
		key    string
		target *string
	}{
		{KeyOpenToken, &tokens.Open},
		{KeyCloseToken, &tokens.Close},
		{KeySeparator, &tokens.Separator},
	} {
		v, ok, err := store.Get(f.key)
		if err != nil {
			return defaults, fmt.Errorf("failed to load %s: %w", f.key, err)
		}
		if ok {
			*f.target = v
		}
	}
	return tokens.Merge(defaults), nil
}

// Tokens returns the voice tokens in effect.
func (e *Editor) Tokens() (models.VoiceTokens, error) {
	return LoadVoiceTokens(e.settings, e.defaults)
}

// ConfigureTokens persists the non-empty fields of tokens.
func (e *Editor) ConfigureTokens(ctx context.Context, tokens models.VoiceTokens) error {
	if e.settings == nil {
		return fmt.Errorf("%w: no settings store", shared.ErrMissingConfig)
	}

	for _, kv := range [][2]string{
		{KeyOpenToken, tokens.Open},
		{KeyCloseToken, tokens.Close},
		{KeySeparator, tokens.Separator},
	} {
		if kv[1] == "" {
			continue
		}
		if err := e.settings.Set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to save %s: %w", kv[0], err)
		}
		e.logger.Debug("saved token", "key", kv[0], "value", kv[1])
	}
	return nil
}

// ParseAndFill parses text and fills the slot list with the result.
//
// Empty text or text without any credit is rejected before any slot is touched.
func (e *Editor) ParseAndFill(ctx context.Context, sync *slots.Synchronizer, text string, progress chan<- ProgressUpdate) (models.CreditSequence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: credit text is empty", shared.ErrMissingInput)
	}

	seq := credits.Parse(text)
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: no credits in %q", shared.ErrInvalidInput, text)
	}
	e.sendProgress(progress, parsedUpdate(seq))

	observed := sync.Observe(func(st slots.State) {
		if u, ok := stateUpdate(st, len(seq)); ok {
			e.sendProgress(progress, u)
		}
	})
	if err := observed.Fill(ctx, seq); err != nil {
		return nil, fmt.Errorf("failed to fill slots: %w", err)
	}

	e.logger.Info("filled slots", "count", len(seq))
	e.sendProgress(progress, doneUpdate(fmt.Sprintf("Filled %d credits", len(seq)), seq))
	return seq, nil
}

// AppendVoiceCredit credits the performer voicing the character in the last slot.
//
// Both lookups must succeed before any slot is written. On success the previous slot's connective
// gains the separator, the character's connective becomes the open token and the performer is
// appended with the close token.
func (e *Editor) AppendVoiceCredit(ctx context.Context, sync *slots.Synchronizer, progress chan<- ProgressUpdate) (*VoiceResult, error) {
	if e.locator == nil || e.lookup == nil {
		return nil, fmt.Errorf("%w: voice credits need a locator and a relationship lookup", shared.ErrMissingConfig)
	}

	tokens, err := e.Tokens()
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, readLastUpdate())
	last, err := sync.Read(ctx, -1)
	if errors.Is(err, shared.ErrSlotOutOfRange) {
		return nil, fmt.Errorf("%w: no credit to extend", shared.ErrMissingInput)
	}
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(last.Entity)
	if name == "" {
		return nil, fmt.Errorf("%w: last credit has no entity", shared.ErrMissingInput)
	}

	e.sendProgress(progress, locateUpdate(name))
	characterID, err := e.locator.Locate(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrEntityNotFound) {
			return nil, fmt.Errorf("failed to locate %q: %w", name, err)
		}
		return nil, fmt.Errorf("%w: %q: %w", shared.ErrEntityNotFound, name, err)
	}

	e.sendProgress(progress, relationshipsUpdate(characterID))
	rels, err := e.lookup.Relationships(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relationships for %s: %w", characterID, err)
	}

	performer, ok := services.FirstActiveTarget(services.FilterRelationships(rels, e.typeID, services.DirectionBackward))
	if !ok {
		return nil, fmt.Errorf("%w: no current performer for %q", shared.ErrRelationshipNotFound, name)
	}
	e.logger.Debug("resolved performer", "character", name, "character_id", characterID, "performer", performer.TargetName)

	err = sync.Update(ctx, -2, func(c models.Credit) models.Credit {
		c.Connective += tokens.Separator + " "
		return c
	})
	if err != nil && !errors.Is(err, shared.ErrSlotOutOfRange) {
		return nil, err
	}

	err = sync.Update(ctx, -1, func(c models.Credit) models.Credit {
		c.Connective = tokens.Open
		return c
	})
	if err != nil {
		return nil, err
	}

	credit := models.Credit{Entity: performer.TargetID, Connective: tokens.Close}
	e.sendProgress(progress, appendUpdate(credit))
	if err := sync.Append(ctx, credit); err != nil {
		return nil, fmt.Errorf("failed to append performer: %w", err)
	}

	result := &VoiceResult{
		Character:     name,
		CharacterID:   characterID,
		PerformerID:   performer.TargetID,
		PerformerName: performer.TargetName,
		Tokens:        tokens,
	}
	e.logger.Info("appended voice credit", "character", name, "performer", performer.TargetName)
	e.sendProgress(progress, doneUpdate(fmt.Sprintf("Credited %s as the voice of %s", performer.TargetName, name), result))
	return result, nil
}

// GuessArtists extracts an artist guess from every title.
func (e *Editor) GuessArtists(titles []string) []credits.Guess {
	guesses := credits.ExtractArtists(titles)
	for _, g := range guesses {
		if !g.Found {
			e.logger.Debug("no artist in title", "title", g.Title)
		}
	}
	return guesses
}

// GuessInto extracts an artist from title and appends it as a credit.
//
// A title without a recognizable artist is not an error: nothing is written and ok is false.
func (e *Editor) GuessInto(ctx context.Context, sync *slots.Synchronizer, title string, progress chan<- ProgressUpdate) (bool, error) {
	artist, ok := credits.ExtractArtist(title)
	if !ok {
		e.logger.Debug("no artist in title", "title", title)
		return false, nil
	}

	credit := models.Credit{Entity: artist}
	e.sendProgress(progress, appendUpdate(credit))
	if err := sync.Append(ctx, credit); err != nil {
		return false, fmt.Errorf("failed to append guess: %w", err)
	}

	e.sendProgress(progress, doneUpdate(fmt.Sprintf("Added %s", artist), credit))
	return true, nil
}
