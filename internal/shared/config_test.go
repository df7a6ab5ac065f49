package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./creditx.db" {
			t.Errorf("expected database path ./creditx.db, got %s", config.Database.Path)
		}

		if config.MusicBrainz.BaseURL != "https://musicbrainz.org" {
			t.Errorf("expected musicbrainz base url, got %s", config.MusicBrainz.BaseURL)
		}

		if config.Voice.OpenToken != " (CV " || config.Voice.CloseToken != ")" || config.Voice.Separator != "," {
			t.Errorf("unexpected voice tokens: %+v", config.Voice)
		}

		if config.Sync.SettleTimeout() != 2*time.Second {
			t.Errorf("expected settle timeout 2s, got %v", config.Sync.SettleTimeout())
		}

		if config.Browser.InputSelector != "input[type=text]" {
			t.Errorf("expected input selector input[type=text], got %s", config.Browser.InputSelector)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[voice]
open_token = "（CV："
close_token = "）"

[sync]
settle_timeout_ms = 500
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Voice.OpenToken != "（CV：" {
			t.Errorf("expected overridden open token, got %q", config.Voice.OpenToken)
		}

		if config.Voice.Separator != "," {
			t.Errorf("expected default separator to survive, got %q", config.Voice.Separator)
		}

		if config.Sync.SettleTimeout() != 500*time.Millisecond {
			t.Errorf("expected settle timeout 500ms, got %v", config.Sync.SettleTimeout())
		}

		if config.Sync.PollInterval() != 50*time.Millisecond {
			t.Errorf("expected default poll interval, got %v", config.Sync.PollInterval())
		}
	})

	t.Run("LoadConfig with invalid toml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[database\npath ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Browser.ControlURL = "ws://127.0.0.1:9222/devtools/browser/abc"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("SaveConfig() error = %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}
		if loaded.Browser.ControlURL != config.Browser.ControlURL {
			t.Errorf("expected control url %q, got %q", config.Browser.ControlURL, loaded.Browser.ControlURL)
		}

		if err := SaveConfig(configPath, nil); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for nil config, got %v", err)
		}
	})
}
