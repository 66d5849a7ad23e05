package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DefaultBrowserDir  string `json:"default_browser_dir" toml:"default_browser_dir"`
	DefaultPlaylistDir string `json:"default_playlist_dir" toml:"default_playlist_dir"`
	ProgressIntervalMs int    `json:"progress_interval_ms" toml:"progress_interval_ms"`
	SampleRate         int    `json:"sample_rate" toml:"sample_rate"`
	OutputBufferMs     int    `json:"output_buffer_ms" toml:"output_buffer_ms"`
	LoadWorkers        int    `json:"load_workers" toml:"load_workers"`
	LogLevel           string `json:"log_level" toml:"log_level"`
	LogFile            string `json:"log_file" toml:"log_file"`
	KeyBindings        KeyMap `json:"key_bindings" toml:"key_bindings"`
}

// KeyMap defines keyboard shortcuts
type KeyMap struct {
	PlayPause   string `json:"play_pause" toml:"play_pause"`
	Next        string `json:"next" toml:"next"`
	Previous    string `json:"previous" toml:"previous"`
	SeekForward string `json:"seek_forward" toml:"seek_forward"`
	SeekBack    string `json:"seek_back" toml:"seek_back"`
	PlaySelect  string `json:"play_selected" toml:"play_selected"`
	MoveUp      string `json:"move_up" toml:"move_up"`
	MoveDown    string `json:"move_down" toml:"move_down"`
	Remove      string `json:"remove" toml:"remove"`
	Add         string `json:"add" toml:"add"`
	Save        string `json:"save" toml:"save"`
	SplitFirst  string `json:"split_first" toml:"split_first"`
	SplitSecond string `json:"split_second" toml:"split_second"`
	Quit        string `json:"quit" toml:"quit"`
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DefaultBrowserDir:  home,
		DefaultPlaylistDir: home,
		ProgressIntervalMs: 100,
		SampleRate:         44100,
		OutputBufferMs:     100,
		LoadWorkers:        4,
		LogLevel:           "info",
		LogFile:            "",
		KeyBindings: KeyMap{
			PlayPause:   " ",
			Next:        "n",
			Previous:    "p",
			SeekForward: "right",
			SeekBack:    "left",
			PlaySelect:  "enter",
			MoveUp:      "K",
			MoveDown:    "J",
			Remove:      "d",
			Add:         "a",
			Save:        "s",
			SplitFirst:  "x",
			SplitSecond: "X",
			Quit:        "q",
		},
	}
}

// ProgressInterval returns the progress polling period
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMs) * time.Millisecond
}

// OutputBuffer returns the audio device latency
func (c *Config) OutputBuffer() time.Duration {
	return time.Duration(c.OutputBufferMs) * time.Millisecond
}

// isTOML reports whether path should be read and written as TOML
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadConfig reads configuration from a JSON or TOML file. Fields missing
// from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	config := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(path) {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// SaveConfig marshals and saves configuration to file
func SaveConfig(config *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadOrCreate loads config from path or creates default if not exists
func LoadOrCreate(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Save default config if file didn't exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(config, path); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return config, nil
}

// LoadEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("WPLAYER_CONFIG"); path != "" {
		return path
	}

	// Use XDG config directory if available
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wplayer", "config.json")
	}

	// Fall back to home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}

	return filepath.Join(home, ".config", "wplayer", "config.json")
}
