// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is read from flags, environment and config.json.
type Config struct {
	Roster    string `usage:"TOML file with the initial peers"`
	Strategy  string `usage:"layout strategy: separated or overlapping"`
	Animation int    `usage:"animation duration in milliseconds, 0 disables animation"`
	LogLevel  string `usage:"log level: debug, info, warn or error"`
	Width     int    `usage:"window width in dp"`
	Height    int    `usage:"window height in dp"`
}

// Roster lists the peers the demo starts with.
type Roster struct {
	Top    []string
	Bottom []string
}

// rosterFile mirrors Roster and the tunables of Config with pointer
// fields, so that keys missing from the file leave defaults alone.
type rosterFile struct {
	Top       *[]string `toml:"top"`
	Bottom    *[]string `toml:"bottom"`
	Strategy  *string   `toml:"strategy"`
	Animation *int      `toml:"animation_ms"`
}

const (
	separated   = "separated"
	overlapping = "overlapping"
)

func Default() Config {
	return Config{
		Strategy:  separated,
		Animation: 500,
		LogLevel:  "info",
		Width:     900,
		Height:    600,
	}
}

func DefaultRoster() Roster {
	return Roster{
		Top:    []string{"1", "2", "3"},
		Bottom: []string{"Me"},
	}
}

// LoadRoster merges the roster file named by c.Roster into r and c, then
// validates c. An empty name leaves both untouched.
func LoadRoster(c *Config, r *Roster) error {
	if c.Roster != "" {
		data, err := os.ReadFile(c.Roster)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		var f rosterFile
		if err := toml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("roster %s: %w", c.Roster, err)
		}
		if f.Top != nil {
			r.Top = *f.Top
		}
		if f.Bottom != nil {
			r.Bottom = *f.Bottom
		}
		if f.Strategy != nil {
			c.Strategy = *f.Strategy
		}
		if f.Animation != nil {
			c.Animation = *f.Animation
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Strategy {
	case separated, overlapping:
	default:
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	if c.Animation < 0 {
		return errors.New("config: negative animation duration")
	}
	return nil
}

func (c *Config) duration() time.Duration {
	return time.Duration(c.Animation) * time.Millisecond
}
