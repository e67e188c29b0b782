package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvPlayers, EnvSeed, EnvLogLevel, EnvLogFile, EnvUI} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1, cfg.Table.Players)
	assert.Equal(t, int64(0), cfg.Table.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ModeTUI, cfg.UI.Mode)
	assert.True(t, cfg.ColorEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "full file",
			src: `
table {
  players = 3
  seed    = 42
}
log {
  level = "debug"
  file  = "game.log"
}
ui {
  mode  = "console"
  color = false
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3, cfg.Table.Players)
				assert.Equal(t, int64(42), cfg.Table.Seed)
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, "game.log", cfg.Log.File)
				assert.Equal(t, ModeConsole, cfg.UI.Mode)
				assert.False(t, cfg.ColorEnabled())
				assert.Equal(t, log.DebugLevel, cfg.LogLevel())
			},
		},
		{
			name: "partial file keeps defaults",
			src: `
table {
  players = 2
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Table.Players)
				assert.Equal(t, "info", cfg.Log.Level)
				assert.Equal(t, "blackjack.log", cfg.Log.File)
				assert.Equal(t, ModeTUI, cfg.UI.Mode)
				assert.True(t, cfg.ColorEnabled())
			},
		},
		{
			name:  "empty file",
			src:   ``,
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, Default(), cfg) },
		},
		{
			name:    "syntax error",
			src:     `table {`,
			wantErr: true,
		},
		{
			name: "unknown attribute",
			src: `
table {
  chips = 100
}
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.src), "test.hcl")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte("table {\n  players = 4\n}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Table.Players)
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides file values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvPlayers, "5")
		t.Setenv(EnvSeed, "12345")
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvLogFile, "other.log")
		t.Setenv(EnvUI, "CONSOLE")

		cfg := Default()
		require.NoError(t, cfg.ApplyEnv())
		assert.Equal(t, 5, cfg.Table.Players)
		assert.Equal(t, int64(12345), cfg.Table.Seed)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "other.log", cfg.Log.File)
		assert.Equal(t, ModeConsole, cfg.UI.Mode)
	})

	t.Run("unset variables leave values alone", func(t *testing.T) {
		clearEnv(t)
		cfg := Default()
		require.NoError(t, cfg.ApplyEnv())
		assert.Equal(t, Default(), cfg)
	})

	t.Run("invalid players", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvPlayers, "many")
		err := Default().ApplyEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvPlayers)
	})

	t.Run("invalid seed", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvSeed, "not-a-number")
		err := Default().ApplyEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvSeed)
	})
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv only fills variables that are not present at all
	require.NoError(t, os.Unsetenv(EnvPlayers))
	require.NoError(t, os.Unsetenv(EnvSeed))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BLACKJACK_PLAYERS=3\nBLACKJACK_SEED=9\n"), 0o644))

	require.NoError(t, LoadEnvFile(path))
	t.Cleanup(func() {
		os.Unsetenv(EnvPlayers)
		os.Unsetenv(EnvSeed)
	})

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 3, cfg.Table.Players)
	assert.Equal(t, int64(9), cfg.Table.Seed)

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadEnvFile(""))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"zero players", func(c *Config) { c.Table.Players = 0 }, "players"},
		{"too many players", func(c *Config) { c.Table.Players = MaxPlayers + 1 }, "players"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad ui mode", func(c *Config) { c.UI.Mode = "web" }, "ui mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
