package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	Rounds   int     `default:"10000" help:"Number of rounds to simulate"`
	Players  int     `default:"1" help:"Players per round"`
	StandOn  int     `name:"stand-on" default:"17" help:"Stop hitting at this total"`
	MaxRisk  float64 `name:"max-risk" default:"100" help:"Stop hitting when the bust hint exceeds this percentage"`
	Workers  int     `default:"0" help:"Worker goroutines (0 = one per CPU)"`
	Seed     int64   `default:"0" help:"RNG seed (0 for random)"`
	LogLevel string  `default:"warn" help:"Log level (debug, info, warn, error)"`
	Output   string  `short:"o" help:"Also write the report to this file"`
}

func (c *SimulateCmd) Run(ctx context.Context) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	sim := simulator.New(simulator.Config{
		Rounds:  c.Rounds,
		Players: c.Players,
		StandOn: c.StandOn,
		MaxRisk: c.MaxRisk,
		Workers: c.Workers,
		Seed:    c.Seed,
		Logger:  newLogger(os.Stderr, level),
		Clock:   quartz.NewReal(),
	})

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	out, err := report.Render()
	if err != nil {
		return err
	}
	fmt.Println(out)

	if c.Output != "" {
		return report.Save(c.Output)
	}
	return nil
}
