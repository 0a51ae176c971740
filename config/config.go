// Package config holds the library's tunables: ring capacity, preview
// hint behavior, key names for the demo host, and the optional Lua
// init script. Values layer in order: built-in defaults, then a TOML
// file, then REGIONRING_ environment variables.
package config

import (
	"fmt"

	"github.com/dshills/regionring/history"
)

// Config holds every tunable the library exposes.
type Config struct {
	History HistoryConfig `toml:"history"`
	Preview PreviewConfig `toml:"preview"`
	Script  ScriptConfig  `toml:"script"`
}

// HistoryConfig controls the per-buffer history rings.
type HistoryConfig struct {
	// Capacity is the ring size. Must be positive.
	Capacity int `toml:"capacity"`
}

// PreviewConfig controls preview sessions.
type PreviewConfig struct {
	// ShowHint echoes a usage hint when a session starts.
	ShowHint bool `toml:"show_hint"`

	// HintText overrides the default hint when non-empty.
	HintText string `toml:"hint_text"`

	// Keys names the keys a host binds to the preview commands.
	Keys KeyConfig `toml:"keys"`
}

// KeyConfig maps host key names onto the preview commands.
type KeyConfig struct {
	Backward string `toml:"backward"`
	Forward  string `toml:"forward"`
	Accept   string `toml:"accept"`
}

// ScriptConfig controls the Lua extension surface.
type ScriptConfig struct {
	// InitFile is an optional script loaded at startup.
	InitFile string `toml:"init_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Capacity: history.DefaultCapacity,
		},
		Preview: PreviewConfig{
			ShowHint: true,
			Keys: KeyConfig{
				Backward: "p",
				Forward:  "n",
				Accept:   "enter",
			},
		},
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.History.Capacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, c.History.Capacity)
	}
	if c.Preview.Keys.Backward == "" || c.Preview.Keys.Forward == "" || c.Preview.Keys.Accept == "" {
		return ErrMissingKeyBinding
	}
	return nil
}
