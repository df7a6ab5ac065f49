package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/repositories"
	"github.com/desertthunder/creditx/internal/services"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/desertthunder/creditx/internal/slots"
	"github.com/desertthunder/creditx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	httpClient  *http.Client
	api         *services.APIService
	musicbrainz *services.MusicBrainzService
	db          *sql.DB
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// DB is opened lazily from Config when nil.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	HTTPClient *http.Client
	DB         *sql.DB
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.API == nil {
		mb := opts.Config.MusicBrainz
		opts.API = services.NewAPIService(mb.BaseURL, opts.HTTPClient, services.APIOptions{
			UserAgent: mb.UserAgent,
			RateLimit: mb.RateLimit,
		})
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		httpClient:  opts.HTTPClient,
		api:         opts.API,
		musicbrainz: services.NewMusicBrainzService(opts.API),
		db:          opts.DB,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

// SetLogger replaces the logger used by every command.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the database handle, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		parseCommand, extractCommand, fillCommand, voiceCommand, tokensCommand, entitiesCommand,
		lookupCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// database opens and migrates the configured database on first use.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	r.logger.Debug("opening database", "path", r.config.Database.Path)
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db
	return db, nil
}

func (r *Runner) settings() (*repositories.SettingsRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewSettingsRepository(db), nil
}

func (r *Runner) entities() (*repositories.EntityRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewEntityRepository(db), nil
}

// voiceDefaults returns the configured tokens, with built-ins for anything unset.
func (r *Runner) voiceDefaults() models.VoiceTokens {
	v := r.config.Voice
	return models.VoiceTokens{Open: v.OpenToken, Close: v.CloseToken, Separator: v.Separator}.
		Merge(models.DefaultVoiceTokens())
}

// newEditor builds a [tasks.Editor] backed by the settings store and MusicBrainz.
func (r *Runner) newEditor(locator services.Locator) (*tasks.Editor, error) {
	settings, err := r.settings()
	if err != nil {
		return nil, err
	}

	return tasks.NewEditor(tasks.EditorOpts{
		Locator:            locator,
		Lookup:             r.musicbrainz,
		Settings:           settings,
		Defaults:           r.voiceDefaults(),
		RelationshipTypeID: r.config.Voice.RelationshipTypeID,
		Logger:             r.logger,
	}), nil
}

func (r *Runner) syncOptions() slots.Options {
	s := r.config.Sync
	return slots.Options{
		SettleTimeout: s.SettleTimeout(),
		AppendTimeout: s.AppendTimeout(),
		PollInterval:  s.PollInterval(),
		Logger:        r.logger,
	}
}

// logProgress drains progress into the logger until the channel is closed.
func (r *Runner) logProgress(progress <-chan tasks.ProgressUpdate, done chan<- struct{}) {
	for update := range progress {
		r.logger.Info(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
	}
	close(done)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
