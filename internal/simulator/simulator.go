package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Players int
	StandOn int     // Players stop hitting once their total reaches this
	MaxRisk float64 // Players stop hitting when the bust hint exceeds this percentage
	Workers int
	Seed    int64 // 0 = seed from the clock
	Logger  *log.Logger
	Clock   quartz.Clock
}

// DefaultConfig returns a config that mirrors the dealer's own policy
func DefaultConfig() Config {
	return Config{
		Rounds:  10000,
		Players: 1,
		StandOn: blackjack.DealerStandsOn,
		MaxRisk: 100,
	}
}

// Report is the outcome of a simulation run
type Report struct {
	Config  Config
	Seed    int64 // resolved seed, replays the run
	Stats   *statistics.Statistics
	Elapsed time.Duration
}

// Simulator plays automated rounds against the dealer
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Simulator{config: config}
}

// Validate checks the simulation parameters
func (c Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Players < 1 {
		return fmt.Errorf("players must be at least 1, got %d", c.Players)
	}
	if c.StandOn < 2 || c.StandOn > blackjack.BustLimit+1 {
		return fmt.Errorf("stand-on must be between 2 and %d, got %d", blackjack.BustLimit+1, c.StandOn)
	}
	if c.MaxRisk < 0 || c.MaxRisk > 100 {
		return fmt.Errorf("max-risk must be between 0 and 100, got %.2f", c.MaxRisk)
	}
	return nil
}

// Run plays every round and returns the aggregated statistics. Round k is
// always dealt from the same shoe for a given seed, so the totals do not
// depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	seed := randutil.Resolve(s.config.Seed, s.config.Clock)
	workers := min(s.config.Workers, s.config.Rounds)
	start := s.config.Clock.Now()

	logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"players", s.config.Players,
		"stand_on", s.config.StandOn,
		"max_risk", s.config.MaxRisk,
		"workers", workers,
		"seed", seed)

	partials := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := range workers {
		partials[w] = &statistics.Statistics{}
		g.Go(func() error {
			for k := w; k < s.config.Rounds; k += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := s.playRound(randutil.Derive(seed, k), partials[w]); err != nil {
					return fmt.Errorf("round %d: %w", k, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, p := range partials {
		stats.Merge(p)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	logger.Info("Simulation complete", "rounds", s.config.Rounds, "mean", stats.Mean(), "elapsed", elapsed)

	return &Report{
		Config:  s.config,
		Seed:    seed,
		Stats:   stats,
		Elapsed: elapsed,
	}, nil
}

// playRound plays a single round with every player following the policy
func (s *Simulator) playRound(seed int64, stats *statistics.Statistics) error {
	shoe := blackjack.NewShoe(randutil.New(seed))
	round, err := blackjack.NewRound(s.config.Players,
		blackjack.WithCardSource(shoe),
		blackjack.WithLogger(s.config.Logger),
		blackjack.WithClock(s.config.Clock),
	)
	if err != nil {
		return err
	}

	for round.Phase() == blackjack.PhasePlayerTurn {
		player := round.Active()
		if s.shouldHit(round, player) {
			if _, err := round.Hit(); err != nil {
				return err
			}
			continue
		}
		if _, err := round.Stay(); err != nil {
			return err
		}
	}

	result, err := round.Finish()
	if err != nil {
		return err
	}
	if result == nil {
		return errors.New("round finished without a result")
	}

	for _, p := range result.Players {
		stats.Add(statistics.RoundResult{
			Seed:         seed,
			Player:       p.Index,
			Outcome:      p.Outcome,
			Total:        p.Value.Total,
			PlayerBusted: p.Busted(),
			DealerBusted: p.DealerBusted,
			Cards:        len(p.Hand),
		})
	}
	return nil
}

// shouldHit applies the simulated player policy
func (s *Simulator) shouldHit(round *blackjack.Round, player int) bool {
	if round.Value(player).Total >= s.config.StandOn {
		return false
	}
	if s.config.MaxRisk >= 100 {
		return true
	}
	return round.EstimateBust(player) <= s.config.MaxRisk
}
