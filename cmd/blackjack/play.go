package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/roundid"
	"github.com/lox/blackjack/internal/tui"
)

type PlayCmd struct {
	Players  int    `arg:"" optional:"" help:"Number of players (default 1)"`
	Config   string `kong:"default='blackjack.hcl',help='HCL config file (missing file uses defaults)'"`
	EnvFile  string `kong:"name='env-file',default='.env',help='Environment file to load'"`
	Plain    bool   `help:"Use the line console instead of the TUI"`
	Seed     int64  `help:"Shoe seed (0 seeds from the clock)"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	LogFile  string `help:"Log file path"`
}

// settings merges flags over env over file over defaults
func (c *PlayCmd) settings() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnvFile(c.EnvFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if c.Players != 0 {
		cfg.Table.Players = c.Players
	}
	if c.Seed != 0 {
		cfg.Table.Seed = c.Seed
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Plain {
		cfg.UI.Mode = config.ModeConsole
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *PlayCmd) Run(ctx context.Context) error {
	cfg, err := c.settings()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg.Log.File, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	clock := quartz.NewReal()
	seed := randutil.Resolve(cfg.Table.Seed, clock)
	logger = logger.With("round_id", roundid.NewGenerator(clock, nil).New())
	logger.Info("Starting round", "players", cfg.Table.Players, "seed", seed, "ui", cfg.UI.Mode)

	bus := blackjack.NewEventBus()
	opts := []blackjack.RoundOption{
		blackjack.WithCardSource(blackjack.NewShoe(randutil.New(seed))),
		blackjack.WithLogger(logger),
		blackjack.WithEventBus(bus),
		blackjack.WithClock(clock),
	}

	var result *blackjack.Result
	switch cfg.UI.Mode {
	case config.ModeTUI:
		model := tui.New(logger)
		bus.Subscribe(model)
		round, err := blackjack.NewRound(cfg.Table.Players, opts...)
		if err != nil {
			return err
		}
		result, err = tui.Play(ctx, model, round)
		if errors.Is(err, tui.ErrAborted) {
			logger.Info("Round abandoned")
			return nil
		}
		if err != nil {
			return err
		}
		printSummary(result)

	default:
		fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
		fmt.Println()
		round, err := blackjack.NewRound(cfg.Table.Players, opts...)
		if err != nil {
			return err
		}
		con := console.New(os.Stdin, os.Stdout, console.Options{
			Color:  cfg.ColorEnabled(),
			Logger: logger,
		})
		result, err = con.Play(ctx, round)
		if err != nil {
			return err
		}
	}

	for _, p := range result.Players {
		logger.Info("Player result", "player", p.Index, "total", p.Value.Total, "outcome", p.Outcome)
	}
	return nil
}

// printSummary repeats the results after the TUI leaves the alternate screen
func printSummary(result *blackjack.Result) {
	fmt.Printf("Dealer has %s for a total of %d.\n", blackjack.FormatRanks(result.DealerHand), result.DealerValue.Total)
	for _, p := range result.Players {
		fmt.Printf("Player %d has a total of %d, so they %s.\n", p.Index, p.Value.Total, p.Reason())
	}
}
