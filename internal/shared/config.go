package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	MusicBrainz MusicBrainzConfig `toml:"musicbrainz"`
	Voice       VoiceConfig       `toml:"voice"`
	Sync        SyncConfig        `toml:"sync"`
	Browser     BrowserConfig     `toml:"browser"`
	Editor      EditorConfig      `toml:"editor"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// MusicBrainzConfig contains settings for the relationship lookup service.
type MusicBrainzConfig struct {
	BaseURL   string  `toml:"base_url"`
	UserAgent string  `toml:"user_agent"`
	RateLimit float64 `toml:"rate_limit"`
}

// VoiceConfig holds the default voice-credit tokens.
//
// Persisted settings override these per field.
type VoiceConfig struct {
	OpenToken          string `toml:"open_token"`
	CloseToken         string `toml:"close_token"`
	Separator          string `toml:"separator"`
	RelationshipTypeID string `toml:"relationship_type_id"`
}

// SyncConfig bounds the settling waits of the slot synchronizer.
type SyncConfig struct {
	SettleTimeoutMs int `toml:"settle_timeout_ms"`
	AppendTimeoutMs int `toml:"append_timeout_ms"`
	PollIntervalMs  int `toml:"poll_interval_ms"`
}

// BrowserConfig contains settings for driving an editor page over the DevTools protocol.
type BrowserConfig struct {
	ControlURL        string `toml:"control_url"`
	Headless          bool   `toml:"headless"`
	TimeoutMs         int    `toml:"timeout_ms"`
	ContainerSelector string `toml:"container_selector"`
	InputSelector     string `toml:"input_selector"`
	AddSelector       string `toml:"add_selector"`
	LinkSelector      string `toml:"link_selector"`
}

// EditorConfig contains settings for the terminal editor.
type EditorConfig struct {
	AddDelayMs int    `toml:"add_delay_ms"`
	LogPath    string `toml:"log_path"`
}

// SettleTimeout returns the fill settling bound.
func (s SyncConfig) SettleTimeout() time.Duration {
	return time.Duration(s.SettleTimeoutMs) * time.Millisecond
}

// AppendTimeout returns the append settling bound.
func (s SyncConfig) AppendTimeout() time.Duration {
	return time.Duration(s.AppendTimeoutMs) * time.Millisecond
}

// PollInterval returns the slot count polling interval.
func (s SyncConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}

// Timeout returns the browser operation timeout.
func (b BrowserConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutMs) * time.Millisecond
}

// AddDelay returns the simulated slot materialization latency.
func (e EditorConfig) AddDelay() time.Duration {
	return time.Duration(e.AddDelayMs) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values are decoded over [DefaultConfig], so keys missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
