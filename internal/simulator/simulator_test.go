package simulator

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Rounds = 200
	cfg.Seed = 12345
	cfg.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	cfg.Clock = quartz.NewMock(t)
	return cfg
}

func TestNew(t *testing.T) {
	sim := New(Config{Rounds: 10, Players: 2, StandOn: 17, MaxRisk: 100})
	require.NotNil(t, sim)
	assert.Equal(t, 10, sim.config.Rounds)
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.Clock)
	assert.Positive(t, sim.config.Workers)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"no rounds", func(c *Config) { c.Rounds = 0 }, "rounds"},
		{"no players", func(c *Config) { c.Players = 0 }, "players"},
		{"stand on too low", func(c *Config) { c.StandOn = 1 }, "stand-on"},
		{"stand on too high", func(c *Config) { c.StandOn = 23 }, "stand-on"},
		{"negative risk", func(c *Config) { c.MaxRisk = -1 }, "max-risk"},
		{"risk over 100", func(c *Config) { c.MaxRisk = 101 }, "max-risk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			_, err = New(cfg).Run(context.Background())
			require.Error(t, err)
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Players = 3
	cfg.Workers = 4

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	s := report.Stats
	assert.Equal(t, int64(12345), report.Seed)
	assert.Equal(t, 600, s.Rounds)
	assert.Equal(t, s.Rounds, s.Wins+s.Losses+s.Ties)
	assert.Len(t, s.Seats, 3)
	for seat := 1; seat <= 3; seat++ {
		assert.Equal(t, 200, s.Seats[seat].Rounds)
	}
	assert.GreaterOrEqual(t, s.Mean(), -1.0)
	assert.LessOrEqual(t, s.Mean(), 1.0)
	assert.Zero(t, report.Elapsed, "mock clock does not advance")
	require.NoError(t, s.Validate())
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	var reports []*Report
	for _, workers := range []int{1, 3, 8} {
		cfg := testConfig(t)
		cfg.Players = 2
		cfg.Workers = workers
		report, err := New(cfg).Run(context.Background())
		require.NoError(t, err)
		reports = append(reports, report)
	}

	first := reports[0].Stats
	for _, r := range reports[1:] {
		assert.Equal(t, first.Wins, r.Stats.Wins)
		assert.Equal(t, first.Losses, r.Stats.Losses)
		assert.Equal(t, first.Ties, r.Stats.Ties)
		assert.Equal(t, first.PlayerBusts, r.Stats.PlayerBusts)
		assert.Equal(t, first.DealerBusts, r.Stats.DealerBusts)
		assert.Equal(t, first.Hits, r.Stats.Hits)
	}
}

func TestRunDifferentSeedsDiffer(t *testing.T) {
	a := testConfig(t)
	b := testConfig(t)
	b.Seed = 54321

	ra, err := New(a).Run(context.Background())
	require.NoError(t, err)
	rb, err := New(b).Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t,
		[]int{ra.Stats.Wins, ra.Stats.Losses, ra.Stats.Hits},
		[]int{rb.Stats.Wins, rb.Stats.Losses, rb.Stats.Hits})
}

func TestRunPolicy(t *testing.T) {
	t.Run("standing on everything never busts", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StandOn = 2
		report, err := New(cfg).Run(context.Background())
		require.NoError(t, err)
		assert.Zero(t, report.Stats.PlayerBusts)
		assert.Zero(t, report.Stats.Hits)
	})

	t.Run("zero risk never busts", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StandOn = 22
		cfg.MaxRisk = 0
		report, err := New(cfg).Run(context.Background())
		require.NoError(t, err)
		assert.Zero(t, report.Stats.PlayerBusts)
		assert.Positive(t, report.Stats.Hits, "totals of 11 or less still hit")
	})

	t.Run("always hitting busts every player", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StandOn = 22
		report, err := New(cfg).Run(context.Background())
		require.NoError(t, err)
		s := report.Stats
		assert.Equal(t, s.Rounds, s.PlayerBusts)
		assert.Equal(t, s.Rounds, s.Losses)
	})
}

func TestRunSeedFromClock(t *testing.T) {
	cfg := testConfig(t)
	cfg.Seed = 0
	cfg.Rounds = 5
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	cfg.Clock = mock

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mock.Now().UnixNano(), report.Seed)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReportRender(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	cfg := testConfig(t)
	cfg.Players = 2
	cfg.Rounds = 50
	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	out, err := report.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "Wins")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "12345")
	assert.Contains(t, out, "Player 2")

	cfg.Players = 1
	report, err = New(cfg).Run(context.Background())
	require.NoError(t, err)
	out, err = report.Render()
	require.NoError(t, err)
	assert.NotContains(t, out, "Seat")
}

func TestReportSave(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	cfg := testConfig(t)
	cfg.Rounds = 20
	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, report.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Player-rounds")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")

	assert.Error(t, report.Save(filepath.Join(dir, "missing", "report.txt")))
}
