package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables recognized by FromEnv.
const (
	EnvCapacity = "REGIONRING_CAPACITY"
	EnvShowHint = "REGIONRING_SHOW_HINT"
	EnvInitFile = "REGIONRING_INIT_FILE"
)

// Load reads a TOML configuration file layered over Default. A missing
// file is not an error; the defaults are returned. The result is
// validated.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// FromEnv overlays environment variables on c. Unset variables leave
// their setting untouched; empty values count as set. The result is
// validated.
func FromEnv(c Config) (Config, error) {
	if v, ok := os.LookupEnv(EnvCapacity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("config: %s: %w", EnvCapacity, err)
		}
		c.History.Capacity = n
	}

	if v, ok := os.LookupEnv(EnvShowHint); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("config: %s: %w", EnvShowHint, err)
		}
		c.Preview.ShowHint = b
	}

	if v, ok := os.LookupEnv(EnvInitFile); ok {
		c.Script.InitFile = v
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
