package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.ProgressInterval() != 100*time.Millisecond {
		t.Errorf("ProgressInterval() = %v, want 100ms", cfg.ProgressInterval())
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.SampleRate)
	}
	if cfg.KeyBindings.PlayPause != " " || cfg.KeyBindings.Quit != "q" {
		t.Errorf("unexpected key bindings: %+v", cfg.KeyBindings)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ProgressIntervalMs != 100 {
		t.Errorf("missing file should give defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "config.json", `{"progress_interval_ms": 250, "log_level": "debug", "key_bindings": {"quit": "Q"}}`},
		{"toml", "config.toml", "progress_interval_ms = 250\nlog_level = \"debug\"\n\n[key_bindings]\nquit = \"Q\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.ProgressIntervalMs != 250 || cfg.LogLevel != "debug" {
				t.Errorf("loaded %+v", cfg)
			}
			if cfg.KeyBindings.Quit != "Q" {
				t.Errorf("quit key = %q, want Q", cfg.KeyBindings.Quit)
			}
			// Fields absent from the file keep their defaults
			if cfg.SampleRate != 44100 || cfg.KeyBindings.Next != "n" {
				t.Errorf("defaults lost: %+v", cfg)
			}
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bad.json", "bad.toml"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{{not valid"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("LoadConfig(%s) should fail", name)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := GetDefaultConfig()
			cfg.DefaultPlaylistDir = "/playlists"
			cfg.OutputBufferMs = 40

			if err := SaveConfig(cfg, path); err != nil {
				t.Fatalf("SaveConfig() error = %v", err)
			}
			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if *loaded != *cfg {
				t.Errorf("loaded %+v, want %+v", loaded, cfg)
			}
		})
	}
}

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wplayer", "config.json")

	if _, err := LoadOrCreate(path); err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config should be written: %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("WPLAYER_CONFIG", "/custom/config.toml")
	if got := GetConfigPath(); got != "/custom/config.toml" {
		t.Errorf("GetConfigPath() = %q", got)
	}

	t.Setenv("WPLAYER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := GetConfigPath(); got != filepath.Join("/xdg", "wplayer", "config.json") {
		t.Errorf("GetConfigPath() = %q", got)
	}
}
