package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration; flags override it
type Config struct {
	Difficulty   string            `toml:"difficulty"`
	Database     string            `toml:"database"`
	LogFile      string            `toml:"log_file"`
	Sound        bool              `toml:"sound"`
	Volume       float64           `toml:"volume"`
	Spectate     string            `toml:"spectate"`   // listen address, empty disables the feed
	PublicURL    string            `toml:"public_url"` // ws:// base advertised to spectators
	HoldWindowMs int               `toml:"hold_window_ms"`
	Keys         map[string]string `toml:"keys"` // control name -> key
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() Config {
	return Config{
		Difficulty:   DifficultyMedium.String(),
		Database:     "invaders.db",
		LogFile:      "invaders.log",
		Sound:        true,
		Volume:       0.5,
		HoldWindowMs: int(DefaultHoldWindow / time.Millisecond),
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file is not an
// error; undecoded keys are returned so the caller can warn about them.
func LoadConfig(path string) (Config, []string, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil, nil
		}
		return DefaultConfig(), nil, fmt.Errorf("config %s: %w", path, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return c, unknown, nil
}

// Save writes the config as TOML, creating parent directories
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// DifficultyLevel parses the configured difficulty
func (c Config) DifficultyLevel() (Difficulty, error) {
	return ParseDifficulty(c.Difficulty)
}

// HoldWindow returns the key hold window
func (c Config) HoldWindow() time.Duration {
	if c.HoldWindowMs <= 0 {
		return DefaultHoldWindow
	}
	return time.Duration(c.HoldWindowMs) * time.Millisecond
}

// Bindings applies the configured keys over the defaults
func (c Config) Bindings() (Bindings, error) {
	b := DefaultBindings()
	for name, key := range c.Keys {
		ctl, err := ParseControl(name)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		kb, err := ParseKeyBinding(key)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", name, err)
		}
		b.Rebind(ctl, kb)
	}
	return b, nil
}

// Validate checks every field that can be wrong
func (c Config) Validate() error {
	if _, err := c.DifficultyLevel(); err != nil {
		return err
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %.2f out of range [0, 1]", c.Volume)
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}
