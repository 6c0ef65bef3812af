package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds tourney configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Export  ExportConfig  `toml:"export"`
	Log     LogConfig     `toml:"log"`
	Library LibraryConfig `toml:"library"`
	Watch   WatchConfig   `toml:"watch"`
}

// CanvasConfig controls block geometry and keyboard movement.
type CanvasConfig struct {
	BlockWidth  float64 `toml:"block_width"`
	BlockHeight float64 `toml:"block_height"`
	NudgeStep   float64 `toml:"nudge_step"`
	// Canvas units per terminal cell in the interactive editor.
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

// ExportConfig controls import/export defaults.
type ExportConfig struct {
	Format       string `toml:"format"` // "json", "yaml", "dot", "html"
	FallbackName string `toml:"fallback_name"`
}

// LogConfig controls diagnostics on stderr.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error", "off"
}

// LibraryConfig controls the saved-design catalogue.
type LibraryConfig struct {
	Path string `toml:"path"` // empty means <config dir>/library.db
}

// WatchConfig controls `tourney watch`.
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas:  CanvasConfig{BlockWidth: 180, BlockHeight: 60, NudgeStep: 20, CellWidth: 10, CellHeight: 20},
		Export:  ExportConfig{Format: "json", FallbackName: "Untitled tournament"},
		Log:     LogConfig{Level: "warn"},
		Watch:   WatchConfig{DebounceMS: 250},
	}
}

// HalfExtents returns half the block size, used to centre dropped blocks.
func (c CanvasConfig) HalfExtents() (w, h float64) {
	return c.BlockWidth / 2, c.BlockHeight / 2
}

// Debounce returns the watch debounce window.
func (c WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// ConfigDir returns the tourney config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tourney")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// WorkspacePath is where the CLI keeps the graph between invocations.
func WorkspacePath() string {
	return filepath.Join(ConfigDir(), "workspace.json")
}

// ActivityPath is the CLI edit journal.
func ActivityPath() string {
	return filepath.Join(ConfigDir(), "activity.jsonl")
}

// LibraryPath returns the SQLite catalogue location.
func (c *Config) LibraryPath() string {
	if c.Library.Path != "" {
		return c.Library.Path
	}
	return filepath.Join(ConfigDir(), "library.db")
}

// Load reads the user config and then a project .tourney.toml found in the
// working directory or any parent, each overriding the previous layer.
// Missing or unreadable files leave the defaults in place.
func Load() *Config {
	cfg := Default()

	if data, err := os.ReadFile(configPath()); err == nil {
		_ = toml.Unmarshal(data, cfg)
	}
	if path := findProjectConfig(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = toml.Unmarshal(data, cfg)
		}
	}
	return cfg
}

// findProjectConfig walks up from the working directory looking for
// .tourney.toml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".tourney.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
