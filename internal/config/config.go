// Package config loads game settings from an HCL file with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// Environment variable names that override file settings
const (
	EnvPlayers  = "BLACKJACK_PLAYERS"
	EnvSeed     = "BLACKJACK_SEED"
	EnvLogLevel = "BLACKJACK_LOG_LEVEL"
	EnvLogFile  = "BLACKJACK_LOG_FILE"
	EnvUI       = "BLACKJACK_UI"
)

// UI modes
const (
	ModeTUI     = "tui"
	ModeConsole = "console"
)

// MaxPlayers bounds the table size. The engine itself has no limit; this
// keeps the interactive screens readable.
const MaxPlayers = 12

// Config represents the complete game configuration
type Config struct {
	Table TableSettings `hcl:"table,block"`
	Log   LogSettings   `hcl:"log,block"`
	UI    UISettings    `hcl:"ui,block"`
}

// TableSettings controls the round itself
type TableSettings struct {
	Players int   `hcl:"players,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// LogSettings controls the debug log
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// UISettings controls the front-end
type UISettings struct {
	Mode  string `hcl:"mode,optional"`
	Color *bool  `hcl:"color,optional"`
}

// Default returns the default configuration
func Default() *Config {
	color := true
	return &Config{
		Table: TableSettings{
			Players: 1,
		},
		Log: LogSettings{
			Level: "info",
			File:  "blackjack.log",
		},
		UI: UISettings{
			Mode:  ModeTUI,
			Color: &color,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields defaults.
// Blocks and attributes left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source into a configuration on top of the defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Table != nil {
		if raw.Table.Players != 0 {
			cfg.Table.Players = raw.Table.Players
		}
		cfg.Table.Seed = raw.Table.Seed
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			cfg.Log.Level = raw.Log.Level
		}
		if raw.Log.File != "" {
			cfg.Log.File = raw.Log.File
		}
	}
	if raw.UI != nil {
		if raw.UI.Mode != "" {
			cfg.UI.Mode = raw.UI.Mode
		}
		if raw.UI.Color != nil {
			cfg.UI.Color = raw.UI.Color
		}
	}
	return cfg, nil
}

// fileConfig mirrors Config with every block optional
type fileConfig struct {
	Table *TableSettings `hcl:"table,block"`
	Log   *LogSettings   `hcl:"log,block"`
	UI    *UISettings    `hcl:"ui,block"`
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(filename string) error {
	if filename == "" {
		return nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(filename); err != nil {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return nil
}

// ApplyEnv overrides settings from BLACKJACK_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPlayers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvPlayers, err)
		}
		c.Table.Players = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Table.Seed = seed
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvUI); v != "" {
		c.UI.Mode = strings.ToLower(v)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Players < 1 || c.Table.Players > MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d, got %d", MaxPlayers, c.Table.Players)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	switch c.UI.Mode {
	case ModeTUI, ModeConsole:
	default:
		return fmt.Errorf("invalid ui mode %q: must be %q or %q", c.UI.Mode, ModeTUI, ModeConsole)
	}
	return nil
}

// LogLevel returns the parsed log level. Call Validate first.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ColorEnabled reports whether colored output is enabled
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}
